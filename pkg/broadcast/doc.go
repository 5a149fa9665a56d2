// Package broadcast provides a type-safe, in-memory publish/subscribe hub.
// It enables one-to-many communication where publishers never wait for consumers.
//
// Every subscription owns a bounded backlog. When a publish finds a backlog
// full, the oldest entry is dropped and the subscription is marked as lagged;
// the next receive reports the number of skipped messages before delivering
// the retained ones in publish order.
//
// Basic usage:
//
//	hub := broadcast.NewHub[string](broadcast.WithCapacity(10))
//	defer hub.Close()
//
//	sub := hub.Subscribe(ctx)
//	defer sub.Close()
//
//	if _, err := hub.Publish(ctx, "hello"); err != nil {
//		// broadcast.ErrNoSubscribers is informational
//	}
//
//	for {
//		msg, err := sub.Recv(ctx)
//		var lagged *broadcast.ErrLagged
//		switch {
//		case errors.As(err, &lagged):
//			continue
//		case err != nil:
//			return
//		}
//		fmt.Println(msg.Data)
//	}
//
// Subscriptions are removed from the hub when:
//   - Close is called on the subscription
//   - The context passed to Subscribe is cancelled
//   - The hub is closed (pending messages remain readable, then ErrClosed)
package broadcast
