package board_test

import (
	"context"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/promptboard/promptboard/internal/anon"
	"github.com/promptboard/promptboard/internal/authz"
	"github.com/promptboard/promptboard/internal/board"
	"github.com/promptboard/promptboard/internal/models"
	"github.com/promptboard/promptboard/internal/storage/memory"
)

func newService(t *testing.T, limits board.Limits) *board.Service {
	t.Helper()
	return board.NewService(memory.New(), anon.NewGenerator(nil, nil), limits)
}

func createPrompt(t *testing.T, svc *board.Service, in board.CreatePromptInput) *models.Prompt {
	t.Helper()
	p, err := svc.CreatePrompt(context.Background(), in)
	require.NoError(t, err)
	return p
}

var codePattern = regexp.MustCompile(`^[0-9a-f]{8}$`)

func TestNewService_ZeroLimitsFallBackToDefaults(t *testing.T) {
	svc := board.NewService(memory.New(), nil, board.Limits{})

	p, err := svc.CreatePrompt(context.Background(), board.CreatePromptInput{Title: "t", Content: "c"})
	require.NoError(t, err)

	c, err := svc.CreateComment(context.Background(), p.ID, board.CreateCommentInput{Content: "hi"})
	require.NoError(t, err)
	assert.NotEmpty(t, c.Username)
}

func TestCreatePrompt_IssuesIdentityAndCode(t *testing.T) {
	svc := newService(t, board.Limits{})

	p := createPrompt(t, svc, board.CreatePromptInput{
		Title:   "A useful prompt",
		Content: "Do the thing.",
		Tags:    []string{"Go", "testing"},
	})

	assert.True(t, codePattern.MatchString(p.ModificationCode))
	assert.Regexp(t, `^[a-z]+-[a-z]+$`, p.Username)
	assert.Equal(t, []string{"Go", "testing"}, p.Tags)
	assert.False(t, p.CreatedAt.IsZero())
	assert.Equal(t, p.CreatedAt, p.UpdatedAt)
}

func TestCreatePrompt_CodeHiddenOnRead(t *testing.T) {
	svc := newService(t, board.Limits{})
	p := createPrompt(t, svc, board.CreatePromptInput{Title: "t", Content: "c"})
	require.NotEmpty(t, p.ModificationCode)

	detail, err := svc.GetPrompt(context.Background(), p.ID)
	require.NoError(t, err)
	assert.Empty(t, detail.ModificationCode)
}

func TestCreatePrompt_CallerUsernameKeptAtCreation(t *testing.T) {
	svc := newService(t, board.Limits{})
	p := createPrompt(t, svc, board.CreatePromptInput{Title: "t", Content: "c", Username: "alice"})
	assert.Equal(t, "alice", p.Username)
}

func TestCreatePrompt_SanitizesBeforeValidation(t *testing.T) {
	svc := newService(t, board.Limits{})

	// Markup is stripped, then emptiness is checked: pure markup fails.
	_, err := svc.CreatePrompt(context.Background(), board.CreatePromptInput{
		Title:   "<b></b>",
		Content: "real content",
	})
	var ve *board.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "title", ve.Field)

	// Mixed markup survives with tags removed.
	p := createPrompt(t, svc, board.CreatePromptInput{
		Title:   "Hello <b>World</b>",
		Content: "Body <script>x</script> text",
	})
	assert.Equal(t, "Hello World", p.Title)
	assert.NotContains(t, p.Content, "script")
}

func TestCreatePrompt_TagErrorBeforePersistence(t *testing.T) {
	svc := newService(t, board.Limits{})

	_, err := svc.CreatePrompt(context.Background(), board.CreatePromptInput{
		Title:   "Hello <b>World</b>",
		Content: "Body <script>x</script> text",
		Tags:    []string{"Test", "test"},
	})
	var ve *board.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "tags", ve.Field)

	// Nothing was written.
	page, err := svc.ListPrompts(context.Background(), board.ListPromptsQuery{})
	require.NoError(t, err)
	assert.Zero(t, page.Count)
}

func TestCreatePrompt_FieldBounds(t *testing.T) {
	svc := newService(t, board.Limits{})
	ctx := context.Background()

	_, err := svc.CreatePrompt(ctx, board.CreatePromptInput{Title: strings.Repeat("a", 151), Content: "c"})
	var ve *board.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "title", ve.Field)

	_, err = svc.CreatePrompt(ctx, board.CreatePromptInput{Title: "t", Content: strings.Repeat("a", 15001)})
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "content", ve.Field)

	_, err = svc.CreatePrompt(ctx, board.CreatePromptInput{Title: "t", Content: "c", Username: strings.Repeat("u", 51)})
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "username", ve.Field)
}

func TestCreatePrompt_CapacityCeiling(t *testing.T) {
	svc := newService(t, board.Limits{MaxPrompts: 2})
	ctx := context.Background()

	createPrompt(t, svc, board.CreatePromptInput{Title: "one", Content: "c"})
	createPrompt(t, svc, board.CreatePromptInput{Title: "two", Content: "c"})

	_, err := svc.CreatePrompt(ctx, board.CreatePromptInput{Title: "three", Content: "c"})
	require.ErrorIs(t, err, board.ErrCapacityExceeded)
}

func TestUpdatePrompt_WrongCodeLeavesRecordUntouched(t *testing.T) {
	svc := newService(t, board.Limits{})
	ctx := context.Background()
	p := createPrompt(t, svc, board.CreatePromptInput{Title: "original", Content: "c"})

	newTitle := "hijacked"
	_, err := svc.UpdatePrompt(ctx, p.ID, board.UpdatePromptPatch{Title: &newTitle}, "deadbeef")
	require.ErrorIs(t, err, authz.ErrForbidden)

	_, err = svc.UpdatePrompt(ctx, p.ID, board.UpdatePromptPatch{Title: &newTitle}, "")
	require.ErrorIs(t, err, authz.ErrForbidden)

	detail, err := svc.GetPrompt(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "original", detail.Title)
	assert.Equal(t, p.UpdatedAt, detail.UpdatedAt)
}

func TestUpdatePrompt_UsernameImmutable(t *testing.T) {
	svc := newService(t, board.Limits{})
	ctx := context.Background()
	p := createPrompt(t, svc, board.CreatePromptInput{Title: "t", Content: "c", Username: "original-name"})

	intruder := "someone-else"
	detail, err := svc.UpdatePrompt(ctx, p.ID, board.UpdatePromptPatch{Username: &intruder}, p.ModificationCode)
	require.NoError(t, err)
	assert.Equal(t, "original-name", detail.Username)
}

func TestUpdatePrompt_ValidUpdate(t *testing.T) {
	svc := newService(t, board.Limits{})
	ctx := context.Background()
	p := createPrompt(t, svc, board.CreatePromptInput{Title: "t", Content: "c", Tags: []string{"old"}})

	time.Sleep(5 * time.Millisecond)

	newTags := []string{"x", "y"}
	detail, err := svc.UpdatePrompt(ctx, p.ID, board.UpdatePromptPatch{Tags: &newTags}, p.ModificationCode)
	require.NoError(t, err)
	assert.Equal(t, []string{"x", "y"}, detail.Tags)
	assert.Equal(t, p.Username, detail.Username)
	assert.Equal(t, "t", detail.Title, "untouched fields stay")
	assert.True(t, detail.UpdatedAt.After(p.UpdatedAt))
	assert.Empty(t, detail.ModificationCode)
}

func TestUpdatePrompt_CodeSurvivesUpdates(t *testing.T) {
	svc := newService(t, board.Limits{})
	ctx := context.Background()
	p := createPrompt(t, svc, board.CreatePromptInput{Title: "t", Content: "c"})

	title2 := "second"
	_, err := svc.UpdatePrompt(ctx, p.ID, board.UpdatePromptPatch{Title: &title2}, p.ModificationCode)
	require.NoError(t, err)

	// The original code still authorizes: it is never regenerated.
	title3 := "third"
	detail, err := svc.UpdatePrompt(ctx, p.ID, board.UpdatePromptPatch{Title: &title3}, p.ModificationCode)
	require.NoError(t, err)
	assert.Equal(t, "third", detail.Title)
}

func TestUpdatePrompt_RevalidatesTouchedFields(t *testing.T) {
	svc := newService(t, board.Limits{})
	ctx := context.Background()
	p := createPrompt(t, svc, board.CreatePromptInput{Title: "t", Content: "c"})

	empty := "<i></i>"
	_, err := svc.UpdatePrompt(ctx, p.ID, board.UpdatePromptPatch{Title: &empty}, p.ModificationCode)
	var ve *board.ValidationError
	require.ErrorAs(t, err, &ve)

	badTags := []string{"ok", "not ok"}
	_, err = svc.UpdatePrompt(ctx, p.ID, board.UpdatePromptPatch{Tags: &badTags}, p.ModificationCode)
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "tags", ve.Field)
}

func TestDeletePrompt_RequiresCode(t *testing.T) {
	svc := newService(t, board.Limits{})
	ctx := context.Background()
	p := createPrompt(t, svc, board.CreatePromptInput{Title: "t", Content: "c"})

	require.ErrorIs(t, svc.DeletePrompt(ctx, p.ID, "wrong123"), authz.ErrForbidden)

	require.NoError(t, svc.DeletePrompt(ctx, p.ID, p.ModificationCode))
	_, err := svc.GetPrompt(ctx, p.ID)
	require.ErrorIs(t, err, board.ErrNotFound)
}

func TestDeletePrompt_CascadesToComments(t *testing.T) {
	svc := newService(t, board.Limits{})
	ctx := context.Background()
	p := createPrompt(t, svc, board.CreatePromptInput{Title: "t", Content: "c"})

	c1, err := svc.CreateComment(ctx, p.ID, board.CreateCommentInput{Content: "first"})
	require.NoError(t, err)
	c2, err := svc.CreateComment(ctx, p.ID, board.CreateCommentInput{Content: "second"})
	require.NoError(t, err)

	require.NoError(t, svc.DeletePrompt(ctx, p.ID, p.ModificationCode))

	_, err = svc.GetComment(ctx, c1.ID)
	require.ErrorIs(t, err, board.ErrNotFound)
	_, err = svc.GetComment(ctx, c2.ID)
	require.ErrorIs(t, err, board.ErrNotFound)
}

func TestGetPrompt_UnknownID(t *testing.T) {
	svc := newService(t, board.Limits{})
	_, err := svc.GetPrompt(context.Background(), uuid.New())
	require.ErrorIs(t, err, board.ErrNotFound)
}
