package watch

import "context"

// Tee copies every update from in to n output channels. A slow consumer
// holds back the others. The outputs are closed when in is closed or ctx
// is done.
func Tee(ctx context.Context, in <-chan Update, n int) []<-chan Update {
	outs := make([]chan Update, n)
	result := make([]<-chan Update, n)
	for i := range outs {
		outs[i] = make(chan Update, 1)
		result[i] = outs[i]
	}

	go func() {
		defer func() {
			for _, out := range outs {
				close(out)
			}
		}()
		for {
			select {
			case <-ctx.Done():
				return
			case u, ok := <-in:
				if !ok {
					return
				}
				for _, out := range outs {
					select {
					case out <- u:
					case <-ctx.Done():
						return
					}
				}
			}
		}
	}()

	return result
}
