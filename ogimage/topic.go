package ogimage

import (
	"errors"
	"fmt"
	"image"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// LoadTopic loads the watermark art for topic from dir ({dir}/{topic}.png).
// A missing file is reported as found == false with a nil error; any other
// failure is returned.
func LoadTopic(dir, topic string) (img image.Image, found bool, err error) {
	name := topicFile(topic)
	if name == "" {
		return nil, false, nil
	}
	path := filepath.Join(dir, name)

	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("open topic art %s: %w", path, err)
	}
	defer f.Close()

	img, _, err = image.Decode(f)
	if err != nil {
		return nil, false, fmt.Errorf("decode topic art %s: %w", path, err)
	}
	return img, true, nil
}

// topicFile maps a topic to its asset file name, or "" when the topic cannot
// name a file inside the topics directory.
func topicFile(topic string) string {
	topic = strings.ToLower(strings.TrimSpace(topic))
	if topic == "" || topic == "." || topic == ".." || strings.ContainsAny(topic, `/\`) {
		return ""
	}
	return topic + ".png"
}
