package types

// Remote is one configured package index. The authenticated state is not
// part of the value; it is recomputed per resolution by the remote
// selector.
type Remote struct {
	Name      string
	URL       string
	VerifySSL bool
}
