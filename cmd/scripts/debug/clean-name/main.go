package main

import (
	"fmt"
	"os"

	"github.com/jessevdk/go-flags"
	"github.com/robinjoseph08/golib/logger"
	"github.com/shishobooks/removecrud/pkg/fileutils"
	"github.com/shishobooks/removecrud/pkg/mediafile"
)

func main() {
	log := logger.New()

	var opts struct {
		OnlyChanged bool `short:"c" long:"only-changed" description:"Only print names that would be renamed"`
		Extensions  bool `short:"e" long:"extensions" description:"Print the supported extensions and exit"`
	}

	args, err := flags.Parse(&opts)
	if err != nil {
		log.Err(err).Fatal("flags parse error")
	}

	if opts.Extensions {
		for _, ext := range mediafile.Extensions() {
			fmt.Printf("%s\t%s\n", ext, mediafile.CategoryOf(ext))
		}
		return
	}

	if len(args) == 0 {
		fmt.Println("go run ./cmd/scripts/debug/clean-name [-c] <filename>...")
		os.Exit(1)
	}

	for _, name := range args {
		clean := fileutils.CleanName(name)
		if opts.OnlyChanged && clean == name {
			continue
		}
		ext, ok := mediafile.Recognize(name)
		if !ok {
			ext = "-"
		}
		fmt.Printf("%s\t%s\t%s\n", name, ext, clean)
	}
}
