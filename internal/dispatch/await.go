package dispatch

import "context"

// Pumper is implemented by dispatchers whose work must be driven from the
// caller's loop.
type Pumper interface {
	RunPending() int
	Wake() <-chan struct{}
}

// Await returns the next result on rx for a synchronous caller. If d is a
// Pumper, Await drives it while waiting.
func Await(ctx context.Context, d Dispatcher, rx *Receiver) (Result, error) {
	p, ok := d.(Pumper)
	if !ok {
		return rx.Recv(ctx)
	}
	for {
		p.RunPending()
		if res, ok := rx.TryRecv(); ok {
			return res, nil
		}
		select {
		case <-p.Wake():
		case <-rx.Ready():
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
}
