package content

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestValidateCreateRequest(t *testing.T) {
	req := &CreateContentRequest{
		Type: " Article ",
		Tags: []string{" 睡眠 ", "睡眠", "", "春季"},
	}
	require.NoError(t, ValidateCreateRequest(req))
	require.Equal(t, TypeArticle, req.Type)
	require.Equal(t, []string{"睡眠", "春季"}, req.Tags)

	require.Error(t, ValidateCreateRequest(&CreateContentRequest{Type: "podcast", Tags: []string{"a"}}))
	require.Error(t, ValidateCreateRequest(&CreateContentRequest{Type: "article", Tags: []string{"  "}}))
	require.Error(t, ValidateCreateRequest(&CreateContentRequest{
		Type: "article", Tags: []string{"a"}, TimeSlots: []string{"midnight"},
	}))
}

func TestValidateListQuery(t *testing.T) {
	query := &ListContentQuery{}
	require.NoError(t, ValidateListQuery(query))
	require.Equal(t, 1, query.Page)
	require.Equal(t, 20, query.Limit)

	// Unknown types browse everything instead of erroring.
	query = &ListContentQuery{Type: "podcast", Page: 2, Limit: 10}
	require.NoError(t, ValidateListQuery(query))
	require.Equal(t, "all", query.Type)

	require.Error(t, ValidateListQuery(&ListContentQuery{Limit: 500}))
}

func TestPrimaryTag(t *testing.T) {
	item := &ContentItem{Tags: []string{"睡眠", "春季"}}
	require.Equal(t, "睡眠", item.PrimaryTag())
	require.Empty(t, (&ContentItem{}).PrimaryTag())
}
