package client

import "context"

// API is the server surface the controller drives.
type API interface {
	List(ctx context.Context) ([]Record, error)
	Create(ctx context.Context, d Draft) (*Record, error)
	Update(ctx context.Context, id string, d Draft) (*Record, error)
	Delete(ctx context.Context, id string) error
}

// Controller runs user actions against an API. It keeps no state: every
// method takes the current State and returns the next one.
type Controller struct {
	api API
}

// NewController creates a Controller.
func NewController(api API) *Controller {
	return &Controller{api: api}
}

// Load fetches the record list. It is the mount action and also runs after
// every successful mutation.
func (c *Controller) Load(ctx context.Context, s State) State {
	s = BeginLoad(s)
	records, err := c.api.List(ctx)
	if err != nil {
		return LoadFailed(s)
	}
	return LoadSucceeded(s, records)
}

// Submit saves the draft, updating when a record is being edited and
// creating otherwise.
func (c *Controller) Submit(ctx context.Context, s State) State {
	s = BeginSubmit(s)

	var err error
	if s.Editing() {
		_, err = c.api.Update(ctx, s.EditingID, s.Draft)
	} else {
		_, err = c.api.Create(ctx, s.Draft)
	}
	if err != nil {
		return SubmitFailed(s, err)
	}

	return c.Load(ctx, SubmitSucceeded(s))
}

// ConfirmDelete deletes the record named by PendingDeleteID. Without a
// pending request it does nothing.
func (c *Controller) ConfirmDelete(ctx context.Context, s State) State {
	id := s.PendingDeleteID
	if id == "" {
		return s
	}

	s = BeginDelete(s)
	if err := c.api.Delete(ctx, id); err != nil {
		return DeleteFailed(s)
	}
	return DeleteSucceeded(c.Load(ctx, s))
}
