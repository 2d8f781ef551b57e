package scripts

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/babylonchain/liquid-staking-hub/internal/db/model"
	"github.com/babylonchain/liquid-staking-hub/internal/mocks"
)

func TestReplayUnprocessableMessages(t *testing.T) {
	ctx := context.Background()
	good := model.UnprocessableMessageDocument{
		ID: primitive.NewObjectID(), MessageBody: `{"sender":"alice","msg":{"bond":{}}}`, Receipt: "1",
	}
	garbage := model.UnprocessableMessageDocument{ID: primitive.NewObjectID(), MessageBody: `not json`, Receipt: "1"}

	dbClient := mocks.NewDBClient(t)
	queueClient := mocks.NewQueueClient(t)
	dbClient.On("FindUnprocessableMessages", ctx).Return([]model.UnprocessableMessageDocument{garbage, good}, nil).Once()
	queueClient.On("SendMessage", ctx, good.MessageBody).Return(nil).Once()
	dbClient.On("DeleteUnprocessableMessage", ctx, good.ID).Return(nil).Once()

	require.NoError(t, ReplayUnprocessableMessages(ctx, queueClient, dbClient))
	dbClient.AssertNotCalled(t, "DeleteUnprocessableMessage", ctx, garbage.ID)
}

func TestReplayUnprocessableMessages_Failures(t *testing.T) {
	ctx := context.Background()
	doc := model.UnprocessableMessageDocument{ID: primitive.NewObjectID(), MessageBody: `{"sender":"alice","msg":{}}`}

	t.Run("nothing to replay", func(t *testing.T) {
		dbClient := mocks.NewDBClient(t)
		dbClient.On("FindUnprocessableMessages", ctx).Return([]model.UnprocessableMessageDocument{}, nil).Once()
		require.Error(t, ReplayUnprocessableMessages(ctx, mocks.NewQueueClient(t), dbClient))
	})

	t.Run("send fails keeps the document", func(t *testing.T) {
		dbClient := mocks.NewDBClient(t)
		queueClient := mocks.NewQueueClient(t)
		dbClient.On("FindUnprocessableMessages", ctx).Return([]model.UnprocessableMessageDocument{doc}, nil).Once()
		queueClient.On("SendMessage", ctx, doc.MessageBody).Return(errors.New("broker down")).Once()

		require.Error(t, ReplayUnprocessableMessages(ctx, queueClient, dbClient))
		dbClient.AssertNotCalled(t, "DeleteUnprocessableMessage", mock.Anything, mock.Anything)
	})
}
