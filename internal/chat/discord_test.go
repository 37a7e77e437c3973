package chat

import (
	"testing"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/rileyhilliard/panelwatch/internal/summary"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmbed(t *testing.T) {
	p := summary.Payload{
		Title:       "title",
		Description: "desc",
		Color:       summary.ColorAlert,
		Fields: []summary.Field{
			{Name: "a", Value: "1"},
			{Name: "b", Value: "2"},
		},
		Footer:       "made by gg",
		Timestamp:    time.Date(2026, 10, 19, 8, 0, 0, 0, time.FixedZone("x", 3600)),
		ThumbnailURL: "https://i.example.com/logo.png",
	}

	e := Embed(p)

	assert.Equal(t, discordgo.EmbedTypeRich, e.Type)
	assert.Equal(t, "title", e.Title)
	assert.Equal(t, "desc", e.Description)
	assert.Equal(t, summary.ColorAlert, e.Color)
	assert.Equal(t, "2026-10-19T07:00:00Z", e.Timestamp)
	require.Len(t, e.Fields, 2)
	assert.Equal(t, "a", e.Fields[0].Name)
	assert.False(t, e.Fields[0].Inline)
	require.NotNil(t, e.Footer)
	assert.Equal(t, "made by gg", e.Footer.Text)
	require.NotNil(t, e.Thumbnail)
	assert.Equal(t, "https://i.example.com/logo.png", e.Thumbnail.URL)
}

func TestEmbed_OptionalPartsOmitted(t *testing.T) {
	e := Embed(summary.Payload{Title: "t"})

	assert.Empty(t, e.Timestamp)
	assert.Nil(t, e.Footer)
	assert.Nil(t, e.Thumbnail)
	assert.Empty(t, e.Fields)
}

func TestNewDiscord(t *testing.T) {
	d, err := NewDiscord("abc", nil)
	require.NoError(t, err)
	assert.Equal(t, "Bot abc", d.session.Token)
	assert.NotZero(t, d.session.Identify.Intents&discordgo.IntentsGuildMessages)
}

func TestRegisterStatsRequiresOpenSession(t *testing.T) {
	d, err := NewDiscord("abc", nil)
	require.NoError(t, err)

	_, err = d.RegisterStats("", "stats", nil)
	assert.Error(t, err)
}
