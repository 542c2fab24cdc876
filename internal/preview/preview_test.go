package preview

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/asim/chatd/internal/model"
	"github.com/asim/chatd/internal/wire"
)

func TestFetchParsesOpenGraphTags(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html><head>
			<meta property="og:title" content="Example Page">
			<meta property="og:image" content="https://example.com/img.png">
			<meta property="og:description" content="a description">
			<meta property="og:site_name" content="Example">
		</head></html>`))
	}))
	defer srv.Close()

	p := Fetch(srv.URL)
	require.NotNil(t, p)
	assert.Equal(t, "Example Page", p.Title)
	assert.Equal(t, "https://example.com/img.png", p.Image)
	assert.Equal(t, "a description", p.Description)
	assert.Equal(t, "Example", p.Site)
}

func TestFetchReturnsNilWithoutRequiredFields(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html><head><meta property="og:description" content="only a description"></head></html>`))
	}))
	defer srv.Close()

	assert.Nil(t, Fetch(srv.URL))
}

func TestHookStoresPreviewForFirstURL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html><head>
			<meta property="og:title" content="Linked">
			<meta property="og:image" content="https://example.com/a.png">
		</head></html>`))
	}))
	defer srv.Close()

	m := model.New()
	f := New(m)
	msg := &model.Message{ID: wire.UUID{Generator: 1, Sequence: 1}, Content: "check this out " + srv.URL}

	f.Hook()(msg)

	p, ok := m.Preview(msg.ID)
	require.True(t, ok)
	assert.Equal(t, "Linked", p.Title)
}

func TestHookIgnoresMessagesWithoutURL(t *testing.T) {
	m := model.New()
	f := New(m)
	msg := &model.Message{ID: wire.UUID{Generator: 1, Sequence: 1}, Content: "no links here"}

	f.Hook()(msg)

	_, ok := m.Preview(msg.ID)
	assert.False(t, ok)
}
