// Package session holds the chat session core: the draft being composed, the
// append-only turn log, and the controller that drives one send through the
// backend and back into the log.
package session

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/smartsight-ai/sightchat/internal/answer"
	"github.com/smartsight-ai/sightchat/internal/backend"
	"github.com/smartsight-ai/sightchat/internal/domain"
)

// resetNotifyTimeout bounds the fire-and-forget backend notification on
// reset. Local state is already cleared by the time it applies.
const resetNotifyTimeout = 10 * time.Second

// Backend is the subset of the transport client the controller requires.
type Backend interface {
	Ask(ctx context.Context, query string, images []domain.ImageData) (*backend.AskResponse, error)
	Reset(ctx context.Context) (string, error)
}

// Controller owns the draft, the turn log, and the session status. All state
// is guarded by one mutex; the backend call runs outside it, so overlapping
// sends interleave freely: both user turns always land in the log, the
// assistant turns append in whichever order the calls resolve.
//
// Each send is tagged with the session generation at issue time. Reset bumps
// the generation, so a response that arrives after a reset is discarded
// instead of appearing in the fresh session.
type Controller struct {
	mu         sync.Mutex
	backend    Backend
	logger     *slog.Logger
	draft      Draft
	log        Log
	status     domain.Status
	generation uint64
}

func NewController(b Backend, logger *slog.Logger) *Controller {
	return &Controller{backend: b, logger: logger, status: domain.StatusIdle}
}

// SetText replaces the draft text.
func (c *Controller) SetText(text string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.draft.SetText(text)
}

// AttachImages appends a batch of acquired images to the draft, preserving
// acquisition order.
func (c *Controller) AttachImages(images ...domain.ImageData) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.draft.Append(images...)
}

// RemoveImage drops the pending image at index i before send.
func (c *Controller) RemoveImage(i int) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.draft.Remove(i)
}

// PendingImages returns a copy of the draft's pending image list.
func (c *Controller) PendingImages() []domain.ImageData {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.draft.Pending()
}

// DraftText returns the current draft text.
func (c *Controller) DraftText() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.draft.Text()
}

// Turns returns a read-only copy of the chat log in insertion order.
func (c *Controller) Turns() []domain.Turn {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.log.Turns()
}

// Status returns the lifecycle state of the most recent send.
func (c *Controller) Status() domain.Status {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.status
}

// Send submits the current draft. An empty draft is a no-op (sent=false, nil
// error), not a failure. Otherwise the user turn is appended and the draft
// cleared before the backend call is issued, so the UI is immediately ready
// for the next input. On transport failure the user turn stays in the log,
// status becomes Failed, and nothing is retried.
func (c *Controller) Send(ctx context.Context) (bool, error) {
	return c.send(ctx, nil)
}

// SendText replaces the draft text and submits in one critical section.
// Callers that set the text and send as two separate calls can interleave
// with each other and lose a submission to the empty-draft no-op; this is
// the race-free entry point for them.
func (c *Controller) SendText(ctx context.Context, text string) (bool, error) {
	return c.send(ctx, &text)
}

func (c *Controller) send(ctx context.Context, text *string) (bool, error) {
	c.mu.Lock()
	if text != nil {
		c.draft.SetText(*text)
	}
	if c.draft.Empty() {
		c.mu.Unlock()
		return false, nil
	}

	query, images := c.draft.take()
	c.log.Append(domain.Turn{
		Role:            domain.RoleUser,
		Text:            query,
		SubmittedImages: images,
	})
	c.status = domain.StatusProcessing
	gen := c.generation
	c.mu.Unlock()

	c.logger.Info("send started", "query_len", len(query), "images", len(images))
	reply, err := c.backend.Ask(ctx, query, images)

	c.mu.Lock()
	defer c.mu.Unlock()

	if gen != c.generation {
		// Session was reset while the call was in flight.
		c.logger.Info("discarding stale response", "generation", gen)
		return true, nil
	}

	if err != nil {
		c.status = domain.StatusFailed
		c.logger.Error("send failed", "error", err)
		return true, err
	}

	result := answer.Parse(reply.LLMResponse)
	c.log.Append(domain.Turn{
		Role:            domain.RoleAssistant,
		Points:          result.Points(),
		RetrievedImages: answer.PairRetrieved(reply.SimilarImages, reply.RetrievedCaptions),
	})
	c.status = domain.StatusCompleted
	c.logger.Info("send completed", "points", len(result.Points()), "retrieved", len(reply.SimilarImages))
	return true, nil
}

// Reset clears the log and draft, returns the status to Idle, and notifies
// the backend from a detached goroutine. The notification is fire-and-forget:
// local state clears unconditionally and a failed notification is only
// logged. Calling Reset twice yields the same state as calling it once.
func (c *Controller) Reset(ctx context.Context) {
	c.mu.Lock()
	c.generation++
	c.log.Clear()
	c.draft.take()
	c.status = domain.StatusIdle
	c.mu.Unlock()

	notifyCtx := context.WithoutCancel(ctx)
	go func() {
		ctx, cancel := context.WithTimeout(notifyCtx, resetNotifyTimeout)
		defer cancel()

		msg, err := c.backend.Reset(ctx)
		if err != nil {
			c.logger.Error("failed to notify backend of reset", "error", err)
			return
		}
		c.logger.Info("backend session reset", "message", msg)
	}()
}
