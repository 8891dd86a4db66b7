package wallet

const (
	displayPrefix = 6
	displaySuffix = 4
)

// FormatAddress shortens an address for display, e.g. 0x1234...abcd.
// It is presentational only; never compare formatted addresses.
func FormatAddress(addr string) string {
	if addr == "" {
		return ""
	}
	if len(addr) <= displayPrefix+displaySuffix {
		return addr
	}
	return addr[:displayPrefix] + "..." + addr[len(addr)-displaySuffix:]
}
