package deskset

import (
	"embed"
	"io/fs"

	"github.com/arthur-debert/deskset/pkg/cobrax/topics"
	"github.com/spf13/cobra"
)

//go:embed topics
var topicFiles embed.FS

func initTopics(rootCmd *cobra.Command) error {
	sub, err := fs.Sub(topicFiles, "topics")
	if err != nil {
		return err
	}
	_, err = topics.Initialize(rootCmd, sub, topics.Options{
		Renderer: topics.NewGlamourRenderer(),
	})
	return err
}
