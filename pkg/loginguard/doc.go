// Package loginguard tracks failed login attempts per identity and blocks an
// identity after a configurable threshold within a fixed window.
//
// State lives entirely in an expiring counter store: an attempt counter whose
// TTL starts at the first failure (the window is fixed-length from first
// failure, not rolling), and a block marker whose existence IS the blocked
// state. Blocks lift implicitly when the marker's TTL elapses; the next
// IsBlocked check simply returns false.
//
// The guard is fail-open. Store communication failures degrade to
// "not blocked" / zero counts so an unreachable cache never takes the login
// path down; they are logged at the store boundary. Call IsBlocked before
// CheckAndBlock — recording an attempt for an already-blocked identity still
// increments the counter and would mask the blocked error message.
//
// # Usage
//
//	guard, err := loginguard.New(store, loginguard.Config{
//	    Threshold:     5,
//	    AttemptWindow: 5 * time.Minute,
//	    BlockDuration: 5 * time.Minute,
//	})
//	if err != nil {
//	    // handle error
//	}
//
//	if guard.IsBlocked(ctx, email) {
//	    // reject with remaining time: guard.BlockTimeRemaining(ctx, email)
//	}
//	if ok := verifier.Verify(ctx, email, password); !ok {
//	    if guard.CheckAndBlock(ctx, email) {
//	        // newly blocked this attempt
//	    }
//	    // otherwise report guard.RemainingAttempts(ctx, email)
//	} else {
//	    guard.ResetAttempts(ctx, email)
//	}
//
// A successful login clears the attempt counter only. An already-active block
// stays in place until its TTL expires; use Unblock to lift it manually.
package loginguard
