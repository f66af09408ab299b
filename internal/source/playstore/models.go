package playstore

// The Play Store has no public JSON API. App details ride inside
// AF_initDataCallback script blobs on the details page, reviews come
// from the batchexecute RPC endpoint. Both payloads are deeply nested
// positional arrays; the index paths below are upstream format
// constants.

// Review row indexes within one batchexecute review entry.
const (
	rowReviewID   = 0
	rowUserName   = 1 // then [0]
	rowScore      = 2
	rowContent    = 4
	rowAt         = 5 // then [0] = unix seconds
	rowThumbsUp   = 6
	rowAppVersion = 10
)

// dig walks a decoded JSON value through positional indexes, returning
// nil as soon as a step does not resolve.
func dig(v interface{}, path ...int) interface{} {
	for _, i := range path {
		arr, ok := v.([]interface{})
		if !ok || i < 0 || i >= len(arr) {
			return nil
		}
		v = arr[i]
	}
	return v
}

func digString(v interface{}, path ...int) string {
	s, _ := dig(v, path...).(string)
	return s
}

func digNumber(v interface{}, path ...int) (float64, bool) {
	f, ok := dig(v, path...).(float64)
	return f, ok
}
