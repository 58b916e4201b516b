package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"mcq-writer-be/internal/constant"
	"mcq-writer-be/internal/dto"
	"mcq-writer-be/internal/entity"
	"mcq-writer-be/internal/repository/specification"
	"mcq-writer-be/internal/repository/unitofwork"
	"mcq-writer-be/pkg/llm"
	"mcq-writer-be/pkg/provenance"
	"mcq-writer-be/pkg/utils"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

type consumerService struct {
	pubSub      *gochannel.GoChannel
	topicName   string
	uowFactory  unitofwork.RepositoryFactory
	llmProvider llm.LLMProvider
	kbService   IKBService
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	uowFactory unitofwork.RepositoryFactory,
	llmProvider llm.LLMProvider,
	kbService IKBService,
) IConsumerService {
	return &consumerService{
		pubSub:      pubSub,
		topicName:   topicName,
		uowFactory:  uowFactory,
		llmProvider: llmProvider,
		kbService:   kbService,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

// extractedTriplet mirrors the extraction prompt schema.
type extractedTriplet struct {
	Subject          string   `json:"subject"`
	Action           string   `json:"action"`
	Object           string   `json:"object"`
	Relation         string   `json:"relation"`
	ContextSentences []string `json:"context_sentences"`
}

type extractionPayload struct {
	Triplets []extractedTriplet `json:"triplets"`
}

func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	var payload dto.PublishExtractTripletsMessage
	err := json.Unmarshal(msg.Payload, &payload)
	if err != nil {
		log.Printf("[ERROR] Failed to unmarshal message: %v", err)
		msg.Ack() // Ack invalid messages to prevent infinite retry
		return
	}

	log.Printf("[INFO] Processing triplet extraction for SourceId: %s", payload.SourceId)

	uow := cs.uowFactory.NewUnitOfWork(ctx)

	source, err := uow.SourceRepository().FindOne(ctx, specification.ByID{ID: payload.SourceId})
	if err != nil {
		log.Printf("[ERROR] Failed to get source %s: %v", payload.SourceId, err)
		msg.Nack() // Nack for retriable errors
		return
	}
	if source == nil {
		log.Printf("[ERROR] Source not found: %s", payload.SourceId)
		msg.Ack() // Source deleted? Ack.
		return
	}

	chunks := utils.SplitText(source.Content, constant.ExtractionChunkSize, constant.ExtractionChunkOverlap)
	log.Printf("[INFO] Source %s split into %d chunks", payload.SourceId, len(chunks))

	stored := 0
	for i, chunk := range chunks {
		triplets, err := cs.extractFromChunk(ctx, chunk)
		if err != nil {
			log.Printf("[ERROR] Extraction failed for chunk %d of source %s: %v", i, payload.SourceId, err)
			msg.Nack()
			return
		}

		for _, t := range triplets {
			if t.Subject == "" || t.Action == "" || t.Object == "" {
				log.Printf("[WARN] Skipping incomplete triplet in chunk %d of source %s", i, payload.SourceId)
				continue
			}

			// Schema validity requires every cited sentence to appear
			// verbatim in the source.
			schemaValid := len(t.ContextSentences) >= 2 &&
				provenance.VerifyAll(source.Content, t.ContextSentences)

			_, err := cs.kbService.UpsertTriplet(ctx, &entity.Triplet{
				Subject:          t.Subject,
				Action:           t.Action,
				Object:           t.Object,
				Relation:         t.Relation,
				SourceId:         source.Id,
				ContextSentences: t.ContextSentences,
				SchemaValid:      schemaValid,
			})
			if err != nil {
				log.Printf("[ERROR] Failed to store triplet for source %s: %v", payload.SourceId, err)
				msg.Nack()
				return
			}
			stored++
		}
	}

	log.Printf("[SUCCESS] Source processed: %d triplets stored for SourceId: %s", stored, payload.SourceId)
	msg.Ack()
}

func (cs *consumerService) extractFromChunk(ctx context.Context, chunk string) ([]extractedTriplet, error) {
	prompt := fmt.Sprintf(constant.TripletExtractionPromptV1, chunk)
	raw, err := cs.llmProvider.Generate(ctx, prompt, llm.WithTemperature(0.2))
	if err != nil {
		return nil, err
	}

	cleaned := utils.StripCodeFences(raw)
	var payload extractionPayload
	if err := json.Unmarshal([]byte(cleaned), &payload); err != nil {
		// Malformed model output is not retriable; skip the chunk.
		log.Printf("[WARN] Extraction returned non-JSON output, skipping chunk: %v", err)
		return nil, nil
	}
	return payload.Triplets, nil
}
