package constant

import "time"

const (
	// lock:ipn:{provider}:{trans_id}
	KeyCallbackLock = "lock:ipn:%s:%s"
	// ipn:result:{provider}:{trans_id}
	KeyCallbackResult = "ipn:result:%s:%s"
)

var (
	TTLCallbackLock   = 30 * time.Second
	TTLCallbackResult = 24 * time.Hour
)
