package pubmed

import (
	"encoding/xml"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// --- Entrez XML structures ---

type eSearchResult struct {
	XMLName xml.Name `xml:"eSearchResult"`
	IdList  struct {
		Ids []string `xml:"Id"`
	} `xml:"IdList"`
}

type pubmedArticleSet struct {
	XMLName  xml.Name        `xml:"PubmedArticleSet"`
	Articles []pubmedArticle `xml:"PubmedArticle"`
}

type pubmedArticle struct {
	MedlineCitation struct {
		PMID    string `xml:"PMID"`
		Article struct {
			ArticleTitle string `xml:"ArticleTitle"`
			Abstract     struct {
				Texts []abstractText `xml:"AbstractText"`
			} `xml:"Abstract"`
			AuthorList struct {
				Authors []author `xml:"Author"`
			} `xml:"AuthorList"`
			Journal struct {
				JournalIssue struct {
					PubDate struct {
						Year        string `xml:"Year"`
						MedlineDate string `xml:"MedlineDate"`
					} `xml:"PubDate"`
				} `xml:"JournalIssue"`
			} `xml:"Journal"`
		} `xml:"Article"`
	} `xml:"MedlineCitation"`
}

type abstractText struct {
	Label string `xml:"Label,attr"`
	Text  string `xml:",chardata"`
}

type author struct {
	LastName       string `xml:"LastName"`
	ForeName       string `xml:"ForeName"`
	Initials       string `xml:"Initials"`
	CollectiveName string `xml:"CollectiveName"`
}

var yearPattern = regexp.MustCompile(`\b(\d{4})\b`)

// ParseArticles decodes an efetch XML payload into Articles.
func ParseArticles(data []byte) ([]Article, error) {
	var set pubmedArticleSet
	if err := xml.Unmarshal(data, &set); err != nil {
		return nil, fmt.Errorf("failed to parse efetch response: %w", err)
	}

	articles := make([]Article, 0, len(set.Articles))
	for _, raw := range set.Articles {
		med := raw.MedlineCitation
		article := Article{
			PMID:     strings.TrimSpace(med.PMID),
			Title:    strings.TrimSpace(med.Article.ArticleTitle),
			Abstract: joinAbstract(med.Article.Abstract.Texts),
			Year:     parseYear(med.Article.Journal.JournalIssue.PubDate.Year, med.Article.Journal.JournalIssue.PubDate.MedlineDate),
		}
		for _, a := range med.Article.AuthorList.Authors {
			if name := formatAuthor(a); name != "" {
				article.Authors = append(article.Authors, name)
			}
		}
		articles = append(articles, article)
	}
	return articles, nil
}

// FormatAuthors renders a citation-style author string, truncated to the
// first three names followed by "et al.".
func FormatAuthors(authors []string) string {
	if len(authors) == 0 {
		return "Unknown"
	}
	if len(authors) <= 3 {
		return strings.Join(authors, ", ")
	}
	return strings.Join(authors[:3], ", ") + " et al."
}

func formatAuthor(a author) string {
	if a.CollectiveName != "" {
		return strings.TrimSpace(a.CollectiveName)
	}
	last := strings.TrimSpace(a.LastName)
	if last == "" {
		return ""
	}
	given := strings.TrimSpace(a.ForeName)
	if given == "" {
		given = strings.TrimSpace(a.Initials)
	}
	if given == "" {
		return last
	}
	return last + " " + given
}

// joinAbstract flattens labelled abstract sections ("METHODS: ...")
// into a single block of text.
func joinAbstract(texts []abstractText) string {
	parts := make([]string, 0, len(texts))
	for _, t := range texts {
		body := strings.TrimSpace(t.Text)
		if body == "" {
			continue
		}
		if t.Label != "" {
			parts = append(parts, t.Label+": "+body)
		} else {
			parts = append(parts, body)
		}
	}
	return strings.Join(parts, "\n")
}

// parseYear extracts a 4-digit publication year. MedlineDate is the
// fallback for records without a structured Year ("2004 Jul-Aug").
// Returns 0 when nothing parses.
func parseYear(year, medlineDate string) int {
	if y, err := strconv.Atoi(strings.TrimSpace(year)); err == nil {
		return y
	}
	if m := yearPattern.FindString(medlineDate); m != "" {
		y, _ := strconv.Atoi(m)
		return y
	}
	return 0
}
