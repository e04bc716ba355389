package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/bodgit/jigsaw"
	"github.com/bodgit/jigsaw/grid"
	"github.com/bodgit/jigsaw/image"
	"github.com/bodgit/jigsaw/tile"
	"github.com/bytedance/sonic"
	"github.com/rs/zerolog"
	"github.com/urfave/cli/v2"
)

var errNoDB = errors.New("no database, use --db or JIGSAW_DB")

func init() {
	cli.VersionFlag = &cli.BoolFlag{
		Name:    "version",
		Aliases: []string{"V"},
		Usage:   "print the version",
	}
}

func newLogger(c *cli.Context) zerolog.Logger {
	if !c.Bool("verbose") {
		return zerolog.Nop()
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
}

// newJigsaw opens the database if one was asked for. The returned function
// must be called to close it.
func newJigsaw(c *cli.Context) (*jigsaw.Jigsaw, func(), error) {
	logger := newLogger(c)

	if c.String("db") == "" {
		return jigsaw.New(nil, logger, c.Int("workers")), func() {}, nil
	}

	db, err := jigsaw.NewPuzzleDB(c.String("db"))
	if err != nil {
		return nil, nil, err
	}

	return jigsaw.New(db, logger, c.Int("workers")), func() { db.Close() }, nil
}

func openDB(c *cli.Context) (*jigsaw.PuzzleDB, error) {
	if c.String("db") == "" {
		return nil, errNoDB
	}
	return jigsaw.NewPuzzleDB(c.String("db"))
}

func readTiles(file string) ([]tile.Tile, error) {
	f, err := os.Open(file)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	tiles, err := tile.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", file, err)
	}

	return tiles, nil
}

func printJSON(v interface{}) error {
	b, err := sonic.Marshal(v)
	if err != nil {
		return err
	}
	fmt.Println(string(b))
	return nil
}

func newApp() *cli.App {
	app := cli.NewApp()

	app.Name = "jigsaw"
	app.Usage = "Reassemble tiled satellite images and hunt for sea monsters"
	app.Version = "1.0.0"

	app.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:    "db",
			EnvVars: []string{"JIGSAW_DB"},
			Usage:   "path to solution database",
		},
		&cli.BoolFlag{
			Name:    "verbose",
			Aliases: []string{"v"},
			Usage:   "increase verbosity",
		},
		&cli.IntFlag{
			Name:    "workers",
			Aliases: []string{"w"},
			EnvVars: []string{"JIGSAW_WORKERS"},
			Value:   1,
			Usage:   "number of goroutines searching the frontier",
		},
	}

	app.Commands = []*cli.Command{
		{
			Name:        "solve",
			Usage:       "Assemble a tile set and scan it for sea monsters",
			Description: "Prints the product of the corner tile ids followed by the water roughness.",
			ArgsUsage:   "FILE",
			Flags: []cli.Flag{
				&cli.BoolFlag{
					Name:  "json",
					Usage: "print the result as JSON",
				},
			},
			Action: func(c *cli.Context) error {
				if c.NArg() < 1 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				tiles, err := readTiles(c.Args().First())
				if err != nil {
					return cli.NewExitError(err, 1)
				}

				j, closeFunc, err := newJigsaw(c)
				if err != nil {
					return cli.NewExitError(err, 1)
				}
				defer closeFunc()

				r, _, err := j.SolveCached(context.Background(), filepath.Base(c.Args().First()), tiles)
				if err != nil {
					return cli.NewExitError(err, 1)
				}

				if c.Bool("json") {
					if err := printJSON(r); err != nil {
						return cli.NewExitError(err, 1)
					}
					return nil
				}

				fmt.Println(r.CornerProduct)
				fmt.Println(r.Roughness)

				return nil
			},
		},
		{
			Name:        "import",
			Usage:       "Store a tile set in the database",
			Description: "",
			ArgsUsage:   "FILE",
			Action: func(c *cli.Context) error {
				if c.NArg() < 1 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				db, err := openDB(c)
				if err != nil {
					return cli.NewExitError(err, 1)
				}
				defer db.Close()

				id, err := db.ImportFile(c.Args().First())
				if err != nil {
					return cli.NewExitError(err, 1)
				}

				logger := newLogger(c)
				logger.Info().Int64("puzzle", id).Str("file", c.Args().First()).Msg("Imported tiles")

				return nil
			},
		},
		{
			Name:        "list",
			Usage:       "List stored tile sets and their solutions",
			Description: "",
			Flags: []cli.Flag{
				&cli.BoolFlag{
					Name:  "json",
					Usage: "print the puzzles as JSON",
				},
			},
			Action: func(c *cli.Context) error {
				db, err := openDB(c)
				if err != nil {
					return cli.NewExitError(err, 1)
				}
				defer db.Close()

				puzzles, err := db.Puzzles()
				if err != nil {
					return cli.NewExitError(err, 1)
				}

				if c.Bool("json") {
					if err := printJSON(puzzles); err != nil {
						return cli.NewExitError(err, 1)
					}
					return nil
				}

				for _, p := range puzzles {
					if p.Solution == nil {
						fmt.Printf("%d\t%s\t%s\t%d\t-\t-\n", p.ID, p.CRC, p.Name, p.Tiles)
						continue
					}
					fmt.Printf("%d\t%s\t%s\t%d\t%d\t%d\n", p.ID, p.CRC, p.Name, p.Tiles, p.Solution.CornerProduct, p.Solution.Roughness)
				}

				return nil
			},
		},
		{
			Name:        "render",
			Usage:       "Write the assembled image as a PNG",
			Description: "The image is drawn in the orientation the sea monsters were found in.",
			ArgsUsage:   "FILE OUTPUT",
			Flags: []cli.Flag{
				&cli.IntFlag{
					Name:  "scale",
					Value: 8,
					Usage: "size in pixels of each image cell",
				},
				&cli.BoolFlag{
					Name:  "highlight",
					Value: true,
					Usage: "colour the sea monsters",
				},
			},
			Action: func(c *cli.Context) error {
				if c.NArg() < 2 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				tiles, err := readTiles(c.Args().Get(0))
				if err != nil {
					return cli.NewExitError(err, 1)
				}

				j, closeFunc, err := newJigsaw(c)
				if err != nil {
					return cli.NewExitError(err, 1)
				}
				defer closeFunc()

				r, _, err := j.SolveCached(context.Background(), filepath.Base(c.Args().Get(0)), tiles)
				if err != nil {
					return cli.NewExitError(err, 1)
				}

				// A stored solution only carries the layout
				scan := r.Scan
				if scan == nil {
					img, err := jigsaw.Stitch(r.Layout)
					if err != nil {
						return cli.NewExitError(err, 1)
					}
					if scan, err = j.ScanImage(img); err != nil {
						return cli.NewExitError(err, 1)
					}
				}

				var highlight grid.Grid
				if c.Bool("highlight") {
					if highlight, err = scan.Covered(); err != nil {
						return cli.NewExitError(err, 1)
					}
				}

				f, err := os.Create(c.Args().Get(1))
				if err != nil {
					return cli.NewExitError(err, 1)
				}
				defer f.Close()

				if err := image.Encode(f, scan.Image, highlight, c.Int("scale")); err != nil {
					return cli.NewExitError(err, 1)
				}

				return nil
			},
		},
		{
			Name:        "scan",
			Usage:       "Search a raster image for sea monsters",
			Description: "Dark pixels are treated as on.",
			ArgsUsage:   "IMAGE",
			Flags: []cli.Flag{
				&cli.IntFlag{
					Name:  "scale",
					Value: 1,
					Usage: "size in pixels of each image cell",
				},
			},
			Action: func(c *cli.Context) error {
				if c.NArg() < 1 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				f, err := os.Open(c.Args().First())
				if err != nil {
					return cli.NewExitError(err, 1)
				}
				defer f.Close()

				g, err := image.Decode(f, c.Int("scale"))
				if err != nil {
					return cli.NewExitError(err, 1)
				}

				j := jigsaw.New(nil, newLogger(c), c.Int("workers"))
				scan, err := j.ScanImage(g)
				if err != nil {
					return cli.NewExitError(err, 1)
				}

				fmt.Println(len(scan.Matches))
				fmt.Println(scan.Roughness)

				return nil
			},
		},
	}

	return app
}

func main() {
	if err := newApp().Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
