package repo

import (
	"testing"
	"time"

	dmn "github.com/beka-birhanu/rotating-maze/domain"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func resultDoc(t *testing.T, r *dmn.EpisodeResult) bson.D {
	t.Helper()

	raw, err := bson.Marshal(r)
	require.NoError(t, err)
	var doc bson.D
	require.NoError(t, bson.Unmarshal(raw, &doc))
	return doc
}

func namespace(mt *mtest.T) string {
	return mt.Coll.Database().Name() + "." + mt.Coll.Name()
}

func TestResultRepo(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	finished := time.Date(2025, 5, 4, 10, 30, 0, 0, time.UTC)

	mt.Run("save upserts by episode", func(mt *mtest.T) {
		repo := &ResultRepo{collection: mt.Coll}
		result := &dmn.EpisodeResult{EpisodeID: uuid.New(), Variant: "stationary", Success: true, Score: 1, StepsTaken: 14, OptimalSteps: 12, Efficiency: 12.0 / 14, FinishedAt: finished}

		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}))
		require.NoError(mt, repo.Save(result))

		evt := mt.GetStartedEvent()
		require.NotNil(mt, evt)
		assert.Equal(mt, "update", evt.CommandName)

		update := evt.Command.Lookup("updates").Array().Index(0).Value().Document()
		assert.True(mt, update.Lookup("upsert").Boolean())
		assert.Equal(mt, "stationary", update.Lookup("u", "$set", "variant").StringValue())
		assert.Equal(mt, int64(14), update.Lookup("u", "$set", "stepsTaken").AsInt64())
		_, err := update.LookupErr("u", "$set", "_id")
		assert.Error(mt, err)
		assert.NotEmpty(mt, update.Lookup("q", "_id").Value)
	})

	mt.Run("save reports server errors", func(mt *mtest.T) {
		repo := &ResultRepo{collection: mt.Coll}

		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{Code: 2, Name: "BadValue", Message: "bad update"}))
		err := repo.Save(&dmn.EpisodeResult{EpisodeID: uuid.New(), Variant: "stationary", FinishedAt: finished})
		require.Error(mt, err)
		assert.Contains(mt, err.Error(), "unexpected error: ")
		assert.Contains(mt, err.Error(), "bad update")
	})

	mt.Run("by episode found", func(mt *mtest.T) {
		repo := &ResultRepo{collection: mt.Coll}
		want := &dmn.EpisodeResult{EpisodeID: uuid.New(), Variant: "non_stationary", Success: true, Score: 1, StepsTaken: 20, OptimalSteps: 16, Efficiency: 0.8, FinishedAt: finished}

		mt.AddMockResponses(mtest.CreateCursorResponse(0, namespace(mt), mtest.FirstBatch, resultDoc(mt.T, want)))
		got, err := repo.ByEpisode(want.EpisodeID)
		require.NoError(mt, err)
		assert.Equal(mt, want, got)

		evt := mt.GetStartedEvent()
		require.NotNil(mt, evt)
		assert.Equal(mt, "find", evt.CommandName)
	})

	mt.Run("by episode missing", func(mt *mtest.T) {
		repo := &ResultRepo{collection: mt.Coll}

		mt.AddMockResponses(mtest.CreateCursorResponse(0, namespace(mt), mtest.FirstBatch))
		_, err := repo.ByEpisode(uuid.New())
		assert.ErrorIs(mt, err, dmn.ErrResultNotFound)
	})

	mt.Run("by episode server error", func(mt *mtest.T) {
		repo := &ResultRepo{collection: mt.Coll}

		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{Code: 2, Name: "BadValue", Message: "bad filter"}))
		_, err := repo.ByEpisode(uuid.New())
		require.Error(mt, err)
		assert.NotErrorIs(mt, err, dmn.ErrResultNotFound)
		assert.Contains(mt, err.Error(), "unexpected error: ")
	})

	mt.Run("by variant most recent first", func(mt *mtest.T) {
		repo := &ResultRepo{collection: mt.Coll}
		newer := &dmn.EpisodeResult{EpisodeID: uuid.New(), Variant: "stationary", Success: true, Score: 1, StepsTaken: 9, OptimalSteps: 9, Efficiency: 1, FinishedAt: finished}
		older := &dmn.EpisodeResult{EpisodeID: uuid.New(), Variant: "stationary", StepsTaken: 27, OptimalSteps: 9, FinishedAt: finished.Add(-time.Minute)}

		mt.AddMockResponses(mtest.CreateCursorResponse(0, namespace(mt), mtest.FirstBatch, resultDoc(mt.T, newer), resultDoc(mt.T, older)))
		got, err := repo.ByVariant("stationary")
		require.NoError(mt, err)
		assert.Equal(mt, []*dmn.EpisodeResult{newer, older}, got)

		evt := mt.GetStartedEvent()
		require.NotNil(mt, evt)
		assert.Equal(mt, "find", evt.CommandName)
		assert.Equal(mt, "stationary", evt.Command.Lookup("filter", "variant").StringValue())
		assert.Equal(mt, int64(-1), evt.Command.Lookup("sort", "finishedAt").AsInt64())
	})

	mt.Run("by variant empty", func(mt *mtest.T) {
		repo := &ResultRepo{collection: mt.Coll}

		mt.AddMockResponses(mtest.CreateCursorResponse(0, namespace(mt), mtest.FirstBatch))
		got, err := repo.ByVariant("non_stationary")
		require.NoError(mt, err)
		assert.Empty(mt, got)
	})
}
