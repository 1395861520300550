package board_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/promptboard/promptboard/internal/board"
	"github.com/promptboard/promptboard/internal/models"
)

func titles(summaries []models.PromptSummary) []string {
	out := make([]string, len(summaries))
	for i, s := range summaries {
		out[i] = s.Title
	}
	return out
}

func TestListPrompts_TagOverlapIsUnion(t *testing.T) {
	svc := newService(t, board.Limits{})
	ctx := context.Background()

	createPrompt(t, svc, board.CreatePromptInput{Title: "only-a", Content: "c", Tags: []string{"a"}})
	createPrompt(t, svc, board.CreatePromptInput{Title: "only-b", Content: "c", Tags: []string{"b"}})
	createPrompt(t, svc, board.CreatePromptInput{Title: "both", Content: "c", Tags: []string{"a", "b"}})
	createPrompt(t, svc, board.CreatePromptInput{Title: "neither", Content: "c", Tags: []string{"z"}})

	page, err := svc.ListPrompts(ctx, board.ListPromptsQuery{Tags: "a,b"})
	require.NoError(t, err)
	assert.Equal(t, 3, page.Count)
	assert.ElementsMatch(t, []string{"only-a", "only-b", "both"}, titles(page.Results))
}

func TestListPrompts_SearchTitleOrContent(t *testing.T) {
	svc := newService(t, board.Limits{})
	ctx := context.Background()

	createPrompt(t, svc, board.CreatePromptInput{Title: "Needle in title", Content: "plain"})
	createPrompt(t, svc, board.CreatePromptInput{Title: "plain", Content: "the NEEDLE hides here"})
	createPrompt(t, svc, board.CreatePromptInput{Title: "unrelated", Content: "nothing"})

	page, err := svc.ListPrompts(ctx, board.ListPromptsQuery{Search: "needle"})
	require.NoError(t, err)
	assert.Equal(t, 2, page.Count)
}

func TestListPrompts_SearchWildcardsMatchLiterally(t *testing.T) {
	svc := newService(t, board.Limits{})
	ctx := context.Background()

	createPrompt(t, svc, board.CreatePromptInput{Title: "50% faster builds", Content: "c"})
	createPrompt(t, svc, board.CreatePromptInput{Title: "50 ways to build", Content: "c"})

	page, err := svc.ListPrompts(ctx, board.ListPromptsQuery{Search: "50%"})
	require.NoError(t, err)
	assert.Equal(t, 1, page.Count)
	assert.Equal(t, []string{"50% faster builds"}, titles(page.Results))
}

func TestListPrompts_SearchAndTagsCombine(t *testing.T) {
	svc := newService(t, board.Limits{})
	ctx := context.Background()

	createPrompt(t, svc, board.CreatePromptInput{Title: "match", Content: "c", Tags: []string{"go"}})
	createPrompt(t, svc, board.CreatePromptInput{Title: "match", Content: "c", Tags: []string{"rust"}})

	page, err := svc.ListPrompts(ctx, board.ListPromptsQuery{Search: "match", Tags: "go"})
	require.NoError(t, err)
	assert.Equal(t, 1, page.Count)
}

func TestListPrompts_SortKeys(t *testing.T) {
	svc := newService(t, board.Limits{})
	ctx := context.Background()

	createPrompt(t, svc, board.CreatePromptInput{Title: "banana", Content: "c"})
	createPrompt(t, svc, board.CreatePromptInput{Title: "Apple", Content: "c"})
	createPrompt(t, svc, board.CreatePromptInput{Title: "cherry", Content: "c"})

	page, err := svc.ListPrompts(ctx, board.ListPromptsQuery{Sort: "title_asc"})
	require.NoError(t, err)
	// Case-insensitive: "Apple" sorts before "banana".
	assert.Equal(t, []string{"Apple", "banana", "cherry"}, titles(page.Results))

	page, err = svc.ListPrompts(ctx, board.ListPromptsQuery{Sort: "title_desc"})
	require.NoError(t, err)
	assert.Equal(t, []string{"cherry", "banana", "Apple"}, titles(page.Results))

	// Unrecognized keys fall back to newest-updated first.
	page, err = svc.ListPrompts(ctx, board.ListPromptsQuery{Sort: "bogus"})
	require.NoError(t, err)
	require.Len(t, page.Results, 3)
	assert.Equal(t, "cherry", page.Results[0].Title)
}

func TestListPrompts_PaginationEnvelope(t *testing.T) {
	svc := newService(t, board.Limits{PageSize: 10, MaxPageSize: 100})
	ctx := context.Background()

	for i := 0; i < 12; i++ {
		createPrompt(t, svc, board.CreatePromptInput{Title: "p", Content: "c"})
	}

	page, err := svc.ListPrompts(ctx, board.ListPromptsQuery{Page: 1, Limit: 5})
	require.NoError(t, err)
	assert.Equal(t, 12, page.Count)
	assert.Len(t, page.Results, 5)
	assert.True(t, page.Next)
	assert.False(t, page.Previous)

	page, err = svc.ListPrompts(ctx, board.ListPromptsQuery{Page: 3, Limit: 5})
	require.NoError(t, err)
	assert.Len(t, page.Results, 2)
	assert.False(t, page.Next)
	assert.True(t, page.Previous)

	// Limit above the maximum clamps rather than erroring.
	page, err = svc.ListPrompts(ctx, board.ListPromptsQuery{Limit: 1000})
	require.NoError(t, err)
	assert.Len(t, page.Results, 12)
}

func TestListPrompts_CommentCountDerived(t *testing.T) {
	svc := newService(t, board.Limits{})
	ctx := context.Background()

	p := createPrompt(t, svc, board.CreatePromptInput{Title: "with comments", Content: "c"})
	for i := 0; i < 3; i++ {
		_, err := svc.CreateComment(ctx, p.ID, board.CreateCommentInput{Content: "hi"})
		require.NoError(t, err)
	}

	page, err := svc.ListPrompts(ctx, board.ListPromptsQuery{})
	require.NoError(t, err)
	require.Len(t, page.Results, 1)
	assert.Equal(t, 3, page.Results[0].CommentCount)
}

func TestBatchGetPrompts_SkipsInvalidAndMissing(t *testing.T) {
	svc := newService(t, board.Limits{})
	ctx := context.Background()

	p1 := createPrompt(t, svc, board.CreatePromptInput{Title: "one", Content: "c"})
	p2 := createPrompt(t, svc, board.CreatePromptInput{Title: "two", Content: "c"})

	summaries, err := svc.BatchGetPrompts(ctx, []string{
		p1.ID.String(),
		"not-a-uuid",
		uuid.New().String(), // valid shape, no record
		p2.ID.String(),
		"",
	})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"one", "two"}, titles(summaries))
}

func TestBatchGetPrompts_EmptyInput(t *testing.T) {
	svc := newService(t, board.Limits{})
	summaries, err := svc.BatchGetPrompts(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, summaries)
	assert.NotNil(t, summaries)
}

func TestRandomPrompt(t *testing.T) {
	svc := newService(t, board.Limits{})
	ctx := context.Background()

	_, err := svc.RandomPrompt(ctx)
	require.ErrorIs(t, err, board.ErrNotFound)

	p := createPrompt(t, svc, board.CreatePromptInput{Title: "only", Content: "c"})
	detail, err := svc.RandomPrompt(ctx)
	require.NoError(t, err)
	assert.Equal(t, p.ID, detail.ID)
	assert.Empty(t, detail.ModificationCode)
}

func TestListTags_VerbatimSorted(t *testing.T) {
	svc := newService(t, board.Limits{})
	ctx := context.Background()

	createPrompt(t, svc, board.CreatePromptInput{Title: "a", Content: "c", Tags: []string{"API", "zoo"}})
	createPrompt(t, svc, board.CreatePromptInput{Title: "b", Content: "c", Tags: []string{"api", "alpha"}})

	tags, err := svc.ListTags(ctx)
	require.NoError(t, err)
	// No case folding: "API" and "api" are distinct, order lexicographic.
	assert.Equal(t, []string{"API", "alpha", "api", "zoo"}, tags)
}
