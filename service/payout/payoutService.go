package payoutsvc

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/rameez-hub125/treasure-to-trash/model"
	payoutrepo "github.com/rameez-hub125/treasure-to-trash/repository/payout"
)

type Dedup interface {
	MarkOnce(key string) (bool, error)
}

type NotificationRepo interface {
	Insert(ctx context.Context, n *model.Notification) error
}

type Service interface {
	// HandleCallback processes a disbursement status delivery from the
	// payout gateway. Redeliveries of the same event are dropped.
	HandleCallback(ctx context.Context, tokenHeader string, raw []byte) error
}

type service struct {
	po payoutrepo.Repo
	de Dedup
	nr NotificationRepo
}

func New(po payoutrepo.Repo, de Dedup, nr NotificationRepo) Service {
	return &service{po: po, de: de, nr: nr}
}

type disbursementEvent struct {
	ID         string `json:"id"`
	Status     string `json:"status"`
	ExternalID string `json:"external_id"`
}

func (s *service) HandleCallback(ctx context.Context, tokenHeader string, raw []byte) error {
	if err := s.po.VerifyCallbackToken(tokenHeader); err != nil {
		return err
	}

	var ev disbursementEvent
	if err := json.Unmarshal(raw, &ev); err != nil {
		return fmt.Errorf("bad webhook json: %w", err)
	}
	if ev.ID == "" || ev.Status == "" {
		return errors.New("missing disbursement fields")
	}

	first, err := s.de.MarkOnce(ev.ID + ":" + ev.Status)
	if err != nil {
		return err
	}
	if !first {
		return nil
	}

	userID, ok := userFromExternalID(ev.ExternalID)
	if !ok {
		return nil
	}

	switch ev.Status {
	case "COMPLETED":
		return s.nr.Insert(ctx, &model.Notification{
			UserID:  userID,
			Message: "Your coin redemption bank transfer has completed",
			Type:    "info",
		})
	case "FAILED":
		return s.nr.Insert(ctx, &model.Notification{
			UserID:  userID,
			Message: "Your coin redemption bank transfer failed; an admin will follow up",
			Type:    "warning",
		})
	default:
		return nil
	}
}

// userFromExternalID parses "redemption:<requestID>:<userID>".
func userFromExternalID(ext string) (int64, bool) {
	parts := strings.Split(ext, ":")
	if len(parts) != 3 || parts[0] != "redemption" {
		return 0, false
	}
	id, err := strconv.ParseInt(parts[2], 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}
