package main

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/robottwo/trigline/internal/config"
	"github.com/robottwo/trigline/internal/tagstore"
	"github.com/robottwo/trigline/pkg/trigger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestSelectTrigger(t *testing.T) {
	file, err := config.Default()
	require.NoError(t, err)

	ts, err := selectTrigger(file, "")
	require.NoError(t, err)
	assert.Equal(t, file.Triggers[0].Trigger, ts.Trigger)

	ts, err = selectTrigger(file, "@")
	require.NoError(t, err)
	assert.Equal(t, "@", ts.Trigger)

	_, err = selectTrigger(file, "!")
	assert.ErrorIs(t, err, config.ErrUnknownTrigger)

	_, err = selectTrigger(&config.File{Source: "empty.yaml"}, "")
	assert.EqualError(t, err, "empty.yaml: no triggers configured")
}

func TestRecordCommits(t *testing.T) {
	ctx := context.Background()
	store, err := tagstore.Open(filepath.Join(t.TempDir(), "tags.db"), nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	require.NoError(t, store.Seed(ctx, testOptions))

	cfg, err := trigger.NewConfig('#')
	require.NoError(t, err)
	engine, err := trigger.NewEngine(cfg, trigger.Remote(store), nil)
	require.NoError(t, err)
	engine.Subscribe(recordCommits(ctx, store, zap.NewNop()))

	host := newLineHost("ship #rel")
	widget := trigger.NewWidget(host, engine)
	widget.Deliver(widget.HandleInput()())

	handled, _ := widget.HandleKey(trigger.IntentAccept)
	require.True(t, handled)
	assert.Equal(t, "ship release", host.Text())

	tags, err := store.Tags(ctx)
	require.NoError(t, err)
	assert.Equal(t, "release", tags[0].Label)
	assert.Equal(t, 1, tags[0].Uses)
}
