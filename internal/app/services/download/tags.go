package download

import (
	"fmt"

	"github.com/angristan/music-download-bot/internal/domain/track"
	"github.com/bogem/id3v2/v2"
)

// writeTags stamps title and artist on the downloaded file so the audio
// keeps its metadata once saved outside the chat.
func writeTags(path string, t track.Track) error {
	tag, err := id3v2.Open(path, id3v2.Options{Parse: true})
	if err != nil {
		return fmt.Errorf("open file: %w", err)
	}
	defer tag.Close()

	tag.SetVersion(4)
	tag.SetDefaultEncoding(id3v2.EncodingUTF8)

	if tag.Title() == "" {
		tag.SetTitle(t.Title)
	}
	if tag.Artist() == "" {
		tag.SetArtist(t.Artist)
	}

	if err := tag.Save(); err != nil {
		return fmt.Errorf("save tags: %w", err)
	}

	return nil
}
