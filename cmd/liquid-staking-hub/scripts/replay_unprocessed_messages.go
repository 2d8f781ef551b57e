package scripts

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/babylonchain/liquid-staking-hub/internal/db"
	"github.com/babylonchain/liquid-staking-hub/internal/queue/client"
)

// ReplayUnprocessableMessages puts every unprocessable execute event back on
// the execute queue and removes it from the database once it is sent.
func ReplayUnprocessableMessages(ctx context.Context, executeQueue client.QueueClient, db db.DBClient) error {
	// Fetch unprocessable messages
	unprocessableMessages, err := db.FindUnprocessableMessages(ctx)
	if err != nil {
		return errors.New("failed to retrieve unprocessable messages")
	}

	// Get the message count
	messageCount := len(unprocessableMessages)

	// Inform the user of the number of unprocessable messages
	fmt.Printf("There are %d unprocessable messages.\n", messageCount)
	if messageCount == 0 {
		return errors.New("no unprocessable messages to replay")
	}

	for _, msg := range unprocessableMessages {
		var event client.ExecuteEvent
		if err := json.Unmarshal([]byte(msg.MessageBody), &event); err != nil {
			log.Ctx(ctx).Warn().Err(err).Str("reason", msg.Reason).Msg("skipping unprocessable message that is not an execute event")
			continue
		}

		if err := executeQueue.SendMessage(ctx, msg.MessageBody); err != nil {
			return fmt.Errorf("failed to replay message: %w", err)
		}

		// Delete the processed message from the database
		if err := db.DeleteUnprocessableMessage(ctx, msg.ID); err != nil {
			return fmt.Errorf("failed to delete unprocessable message: %w", err)
		}
	}

	log.Info().Msg("Reprocessing of unprocessable messages completed.")
	return nil
}
