package utils

import (
	"hash/fnv"
	"strings"
)

// interviewCovers are the bundled card cover images.
var interviewCovers = []string{
	"/covers/adobe.png",
	"/covers/amazon.png",
	"/covers/facebook.png",
	"/covers/hostinger.png",
	"/covers/pinterest.png",
	"/covers/quora.png",
	"/covers/reddit.png",
	"/covers/skype.png",
	"/covers/spotify.png",
	"/covers/telegram.png",
	"/covers/tiktok.png",
	"/covers/yahoo.png",
}

// CoverForCompany picks a cover image for a company name. The same
// company always maps to the same cover.
func CoverForCompany(company string) string {
	h := fnv.New32a()
	h.Write([]byte(strings.ToLower(strings.TrimSpace(company))))
	return interviewCovers[h.Sum32()%uint32(len(interviewCovers))]
}
