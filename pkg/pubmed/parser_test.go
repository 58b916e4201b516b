package pubmed

import (
	"testing"
)

const efetchSample = `<?xml version="1.0" ?>
<PubmedArticleSet>
  <PubmedArticle>
    <MedlineCitation>
      <PMID>12345678</PMID>
      <Article>
        <Journal>
          <JournalIssue>
            <PubDate>
              <Year>2021</Year>
            </PubDate>
          </JournalIssue>
        </Journal>
        <ArticleTitle>Metformin in type 2 diabetes</ArticleTitle>
        <Abstract>
          <AbstractText Label="BACKGROUND">Metformin is first-line therapy.</AbstractText>
          <AbstractText Label="RESULTS">HbA1c fell by 1.5%.</AbstractText>
        </Abstract>
        <AuthorList>
          <Author>
            <LastName>Smith</LastName>
            <ForeName>Jane</ForeName>
            <Initials>J</Initials>
          </Author>
          <Author>
            <LastName>Lee</LastName>
            <Initials>K</Initials>
          </Author>
          <Author>
            <CollectiveName>UKPDS Group</CollectiveName>
          </Author>
        </AuthorList>
      </Article>
    </MedlineCitation>
  </PubmedArticle>
  <PubmedArticle>
    <MedlineCitation>
      <PMID>87654321</PMID>
      <Article>
        <Journal>
          <JournalIssue>
            <PubDate>
              <MedlineDate>2004 Jul-Aug</MedlineDate>
            </PubDate>
          </JournalIssue>
        </Journal>
        <ArticleTitle>Older record</ArticleTitle>
        <Abstract>
          <AbstractText>Plain abstract without labels.</AbstractText>
        </Abstract>
      </Article>
    </MedlineCitation>
  </PubmedArticle>
</PubmedArticleSet>`

func TestParseArticles(t *testing.T) {
	articles, err := ParseArticles([]byte(efetchSample))
	if err != nil {
		t.Fatalf("ParseArticles() error = %v", err)
	}
	if len(articles) != 2 {
		t.Fatalf("got %d articles, want 2", len(articles))
	}

	first := articles[0]
	if first.PMID != "12345678" {
		t.Errorf("PMID = %q, want %q", first.PMID, "12345678")
	}
	if first.Title != "Metformin in type 2 diabetes" {
		t.Errorf("Title = %q", first.Title)
	}
	if first.Year != 2021 {
		t.Errorf("Year = %d, want 2021", first.Year)
	}
	wantAbstract := "BACKGROUND: Metformin is first-line therapy.\nRESULTS: HbA1c fell by 1.5%."
	if first.Abstract != wantAbstract {
		t.Errorf("Abstract = %q, want %q", first.Abstract, wantAbstract)
	}
	wantAuthors := []string{"Smith Jane", "Lee K", "UKPDS Group"}
	if len(first.Authors) != len(wantAuthors) {
		t.Fatalf("got %d authors, want %d", len(first.Authors), len(wantAuthors))
	}
	for i, want := range wantAuthors {
		if first.Authors[i] != want {
			t.Errorf("Authors[%d] = %q, want %q", i, first.Authors[i], want)
		}
	}

	second := articles[1]
	if second.Year != 2004 {
		t.Errorf("MedlineDate year = %d, want 2004", second.Year)
	}
	if second.Abstract != "Plain abstract without labels." {
		t.Errorf("Abstract = %q", second.Abstract)
	}
	if len(second.Authors) != 0 {
		t.Errorf("got %d authors, want 0", len(second.Authors))
	}
}

func TestFormatAuthors(t *testing.T) {
	tests := []struct {
		name    string
		authors []string
		want    string
	}{
		{
			name:    "no authors",
			authors: nil,
			want:    "Unknown",
		},
		{
			name:    "single author",
			authors: []string{"Smith Jane"},
			want:    "Smith Jane",
		},
		{
			name:    "three authors, no truncation",
			authors: []string{"Smith Jane", "Lee K", "Patel R"},
			want:    "Smith Jane, Lee K, Patel R",
		},
		{
			name:    "four authors truncate to et al",
			authors: []string{"Smith Jane", "Lee K", "Patel R", "Chen W"},
			want:    "Smith Jane, Lee K, Patel R et al.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatAuthors(tt.authors); got != tt.want {
				t.Errorf("FormatAuthors() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParseYear(t *testing.T) {
	tests := []struct {
		name        string
		year        string
		medlineDate string
		want        int
	}{
		{"structured year", "2021", "", 2021},
		{"medline date fallback", "", "2004 Jul-Aug", 2004},
		{"nothing parses", "", "Summer issue", 0},
		{"year wins over medline date", "1999", "2004 Jul-Aug", 1999},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := parseYear(tt.year, tt.medlineDate); got != tt.want {
				t.Errorf("parseYear(%q, %q) = %d, want %d", tt.year, tt.medlineDate, got, tt.want)
			}
		})
	}
}
