// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// QuoteFields is the CSV header of quote output, in column order.
var QuoteFields = []string{
	"articleId", "startSentenceId", "startWordId",
	"endSentenceId", "endWordId", "author", "authorHead", "direct",
}

// QuoteRecord is the flattened form of one detected quote.
// Sentence and word ids are the corpus identifiers of the first and last
// proposition tokens, not internal token indices.
type QuoteRecord struct {
	ArticleID       string `json:"article_id" yaml:"article_id"`
	StartSentenceID string `json:"start_sentence_id" yaml:"start_sentence_id"`
	StartWordID     string `json:"start_word_id" yaml:"start_word_id"`
	EndSentenceID   string `json:"end_sentence_id" yaml:"end_sentence_id"`
	EndWordID       string `json:"end_word_id" yaml:"end_word_id"`

	// Author is each author's lemma rendering, joined with "|".
	Author string `json:"author" yaml:"author"`

	// AuthorHead locates the primary author's head token as "sentenceId-wordId".
	AuthorHead string `json:"author_head" yaml:"author_head"`

	Direct bool `json:"direct" yaml:"direct"`

	// Text is the surface text of the proposition. It is kept in the
	// quote store but not written to CSV output.
	Text string `json:"text,omitempty" yaml:"text,omitempty"`
}

// Row returns the record's CSV columns in QuoteFields order.
func (r QuoteRecord) Row() []string {
	direct := "false"
	if r.Direct {
		direct = "true"
	}
	return []string{
		r.ArticleID, r.StartSentenceID, r.StartWordID,
		r.EndSentenceID, r.EndWordID, r.Author, r.AuthorHead, direct,
	}
}

// ActorFields is the CSV header of actor output, in column order.
var ActorFields = []string{
	"articleId", "sentenceId", "wordId", "name", "organisation", "role",
}

// ActorRecord describes a named person together with a role and the
// organisation the role belongs to.
type ActorRecord struct {
	ArticleID    string `json:"article_id" yaml:"article_id"`
	SentenceID   string `json:"sentence_id" yaml:"sentence_id"`
	WordID       string `json:"word_id" yaml:"word_id"`
	Name         string `json:"name" yaml:"name"`
	Organisation string `json:"organisation" yaml:"organisation"`
	Role         string `json:"role" yaml:"role"`
}

// Row returns the record's CSV columns in ActorFields order.
func (r ActorRecord) Row() []string {
	return []string{r.ArticleID, r.SentenceID, r.WordID, r.Name, r.Organisation, r.Role}
}
