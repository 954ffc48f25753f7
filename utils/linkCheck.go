package utils

import (
	"log"
	"time"

	"github.com/go-resty/resty/v2"
)

// VerifyVideoURL probes a lesson's video URL and logs when it is not
// reachable. Runs on a goroutine from the lesson handlers; a broken
// link never fails the request.
func VerifyVideoURL(lessonTitle, videoURL string) {
	if videoURL == "" {
		return
	}

	client := resty.New().SetTimeout(10 * time.Second)

	resp, err := client.R().Head(videoURL)
	if err != nil {
		log.Printf("[LINK-CHECK] Video URL for lesson %q is unreachable: %v", lessonTitle, err)
		return
	}

	if resp.StatusCode() >= 400 {
		log.Printf("[LINK-CHECK] Video URL for lesson %q returned status %d", lessonTitle, resp.StatusCode())
	}
}
