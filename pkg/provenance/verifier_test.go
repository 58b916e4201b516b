package provenance

import (
	"testing"
)

const sourceText = `BACKGROUND: Metformin is the first-line therapy for type 2 diabetes.
It reduces hepatic glucose production and improves insulin sensitivity.
RESULTS: HbA1c decreased by 1.5% over 24 weeks.`

func TestVerify(t *testing.T) {
	tests := []struct {
		name     string
		sentence string
		want     bool
	}{
		{
			name:     "exact match",
			sentence: "Metformin is the first-line therapy for type 2 diabetes.",
			want:     true,
		},
		{
			name:     "case insensitive",
			sentence: "METFORMIN IS THE FIRST-LINE THERAPY for type 2 diabetes.",
			want:     true,
		},
		{
			name:     "spans a line break in the source",
			sentence: "type 2 diabetes. It reduces hepatic glucose production",
			want:     true,
		},
		{
			name:     "extra internal whitespace in the sentence",
			sentence: "HbA1c decreased  by  1.5% over 24 weeks.",
			want:     true,
		},
		{
			name:     "leading and trailing whitespace",
			sentence: "  improves insulin sensitivity.  ",
			want:     true,
		},
		{
			name:     "fabricated sentence",
			sentence: "Metformin cures type 1 diabetes.",
			want:     false,
		},
		{
			name:     "empty sentence",
			sentence: "",
			want:     false,
		},
		{
			name:     "whitespace-only sentence",
			sentence: "   \n\t ",
			want:     false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Verify(sourceText, tt.sentence); got != tt.want {
				t.Errorf("Verify() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestVerifyAll(t *testing.T) {
	tests := []struct {
		name      string
		sentences []string
		want      bool
	}{
		{
			name: "all grounded",
			sentences: []string{
				"Metformin is the first-line therapy for type 2 diabetes.",
				"HbA1c decreased by 1.5% over 24 weeks.",
			},
			want: true,
		},
		{
			name: "one fabricated sentence fails the lot",
			sentences: []string{
				"Metformin is the first-line therapy for type 2 diabetes.",
				"Metformin cures type 1 diabetes.",
			},
			want: false,
		},
		{
			name:      "empty slice is not grounded",
			sentences: nil,
			want:      false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := VerifyAll(sourceText, tt.sentences); got != tt.want {
				t.Errorf("VerifyAll() = %v, want %v", got, tt.want)
			}
		})
	}
}
