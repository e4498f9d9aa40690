// Command fyviewer browses images and opens them in a full-screen viewer.
package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"fyviewer/internal/config"
	"fyviewer/internal/gallery"
	"fyviewer/internal/loader"
	"fyviewer/internal/scan"

	"github.com/spf13/cobra"
)

// Session is everything the GUI needs to start.
type Session struct {
	Items    []gallery.Item
	Settings config.Settings
	Cache    *loader.Cache
}

// OpenCacheFunc opens the image cache in dir.
type OpenCacheFunc func(dir string, logger loader.LoggerFunc) (*loader.Cache, error)

func cliLogger(msg string) {
	log.Printf("[fyviewer] %s", msg)
}

// NewRootCmd creates the root command. openCache and runGUI are injected so
// tests can avoid the real cache location and the window.
func NewRootCmd(openCache OpenCacheFunc, runGUI func(*Session) error) *cobra.Command {
	var (
		cacheDirFlag string
		settingsFlag string
		patternFlag  string
		manifestFlag string
	)

	loadSettings := func() (config.Settings, error) {
		if settingsFlag == "" {
			return config.DefaultSettings(), nil
		}
		return config.LoadSettings(settingsFlag)
	}

	rootCmd := &cobra.Command{
		Use:   "fyviewer [dir]",
		Short: "fyviewer - browse images and view them full screen",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := loadSettings()
			if err != nil {
				return err
			}

			var items []gallery.Item
			if manifestFlag != "" {
				m, err := gallery.LoadManifest(manifestFlag)
				if err != nil {
					return err
				}
				items = m.Items
			} else {
				dir := "."
				if len(args) > 0 {
					dir = args[0]
				}
				files, err := scan.Run(dir, patternFlag)
				if err != nil {
					return err
				}
				items = gallery.ItemsFromScan(files)
			}
			if len(items) == 0 {
				cmd.Println("No images found.")
				return nil
			}

			cache, err := openCache(cacheDirFlag, cliLogger)
			if err != nil {
				return fmt.Errorf("failed to open image cache: %w", err)
			}
			defer cache.Close()
			return runGUI(&Session{Items: items, Settings: settings, Cache: cache})
		},
	}
	rootCmd.Flags().StringVarP(&patternFlag, "pattern", "p", scan.DefaultPattern, "Glob pattern selecting images below the directory")
	rootCmd.Flags().StringVarP(&manifestFlag, "manifest", "m", "", "YAML manifest listing the images to show")
	rootCmd.MarkFlagsMutuallyExclusive("pattern", "manifest")
	rootCmd.PersistentFlags().StringVar(&settingsFlag, "settings", "", "YAML file overriding the viewer settings")
	rootCmd.PersistentFlags().StringVar(&cacheDirFlag, "cache-dir", "", "Directory of the image cache (default: user cache dir)")

	// Show image details
	infoCmd := &cobra.Command{
		Use:   "info [image]",
		Short: "Print dimensions, size, modification time and EXIF data of an image",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			info, _, err := loader.Info(args[0])
			if err != nil {
				return err
			}
			cmd.Printf("File:     %s\n", filepath.Base(args[0]))
			cmd.Printf("Format:   %s\n", info.Format)
			cmd.Printf("Size:     %dx%d, %s\n", info.Width, info.Height, loader.FormatSize(info.Size))
			cmd.Printf("Modified: %s\n", info.ModTime.Format("2006-01-02 15:04:05"))
			keys := make([]string, 0, len(info.EXIFData))
			for k := range info.EXIFData {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			for _, k := range keys {
				cmd.Printf("%s: %s\n", k, strings.Trim(info.EXIFData[k], `"`))
			}
			return nil
		},
	}
	rootCmd.AddCommand(infoCmd)

	// Validate settings
	settingsCmd := &cobra.Command{
		Use:   "settings",
		Short: "Print the effective viewer settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := loadSettings()
			if err != nil {
				return err
			}
			cmd.Printf("present_duration:      %s\n", s.PresentDuration)
			cmd.Printf("dismiss_duration:      %s\n", s.DismissDuration)
			cmd.Printf("fade_duration:         %s\n", s.FadeDuration)
			cmd.Printf("spring_damping:        %g\n", s.SpringDamping)
			cmd.Printf("chrome_offset:         %g\n", s.ChromeOffset)
			cmd.Printf("dismiss_threshold:     %g\n", s.DismissThreshold)
			cmd.Printf("max_zoom:              %g\n", s.MaxZoom)
			cmd.Printf("copy_revert_delay:     %s\n", s.CopyRevertDelay)
			cmd.Printf("drag_to_copy_distance: %g\n", s.DragToCopyDistance)
			return nil
		},
	}
	rootCmd.AddCommand(settingsCmd)

	cacheCmd := &cobra.Command{
		Use:   "cache",
		Short: "Inspect or empty the image cache",
	}
	rootCmd.AddCommand(cacheCmd)

	withCache := func(fn func(cmd *cobra.Command, c *loader.Cache) error) func(*cobra.Command, []string) error {
		return func(cmd *cobra.Command, _ []string) error {
			c, err := openCache(cacheDirFlag, cliLogger)
			if err != nil {
				return fmt.Errorf("failed to open image cache: %w", err)
			}
			defer c.Close()
			return fn(cmd, c)
		}
	}

	cacheCmd.AddCommand(&cobra.Command{
		Use:   "stats",
		Short: "Show the number and total size of cached images",
		Args:  cobra.NoArgs,
		RunE: withCache(func(cmd *cobra.Command, c *loader.Cache) error {
			stats, err := c.Stats()
			if err != nil {
				return err
			}
			cmd.Printf("Cache:   %s\n", stats.Path)
			cmd.Printf("Entries: %d\n", stats.Entries)
			cmd.Printf("Size:    %s\n", loader.FormatSize(stats.Bytes))
			return nil
		}),
	})

	cacheCmd.AddCommand(&cobra.Command{
		Use:   "clear",
		Short: "Remove every cached image",
		Args:  cobra.NoArgs,
		RunE: withCache(func(cmd *cobra.Command, c *loader.Cache) error {
			n, err := c.Clear()
			if err != nil {
				return err
			}
			cmd.Printf("Removed %d cached images.\n", n)
			return nil
		}),
	})

	return rootCmd
}

func main() {
	log.SetPrefix("fyviewer ")
	rootCmd := NewRootCmd(loader.OpenCache, runGUI)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
