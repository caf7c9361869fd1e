package cmd

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/chaoxe/miniapp/internal/domain/entity"
	"github.com/chaoxe/miniapp/internal/infrastructure/images"
)

var (
	imageCategory string
	imageThumbW   int
	imageThumbH   int
	imageQuality  float64
	imageMaxWidth int
)

var imageCmd = &cobra.Command{
	Use:   "image",
	Short: "Resolve, inspect and compress images",
}

var imageResolveCmd = &cobra.Command{
	Use:   "resolve <path>...",
	Short: "Resolve image paths to absolute URLs",
	Long: `Resolve image paths the way the mini program does: absolute URLs and bundled
/static/ paths pass through, everything else is joined to the image base URL.
An empty path resolves to the category's default image.

Examples:
  chaoxe image resolve banner1.jpg
  chaoxe image resolve --category service ''
  chaoxe image resolve --thumb-width 200 --thumb-height 200 https://chyxe.cn/photo/a.jpg`,
	Args: cobra.MinimumNArgs(1),
	RunE: runImageResolve,
}

var imageSizeCmd = &cobra.Command{
	Use:   "size <url>",
	Short: "Fetch an image and print its dimensions",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := requireApp()
		if err != nil {
			return err
		}
		src := a.Services.Images.Resolve(args[0], entity.ImageCategory(imageCategory))
		size, format, err := a.Services.Images.Size(a.Ctx(), src)
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), a.Renderer.RenderKeyValues(map[string]string{
			"url":    src,
			"format": format,
			"width":  strconv.Itoa(size.Width),
			"height": strconv.Itoa(size.Height),
		}))
		return nil
	},
}

var imagePreloadCmd = &cobra.Command{
	Use:   "preload <url>...",
	Short: "Fetch several images concurrently",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := requireApp()
		if err != nil {
			return err
		}
		urls := make([]string, len(args))
		for i, arg := range args {
			urls[i] = a.Services.Images.Resolve(arg, entity.ImageCategory(imageCategory))
		}
		results := a.Services.Images.Preload(a.Ctx(), urls...)
		fmt.Fprint(cmd.OutOrStdout(), a.Renderer.RenderPreload(results))
		for _, res := range results {
			if !res.OK() {
				return fmt.Errorf("some images failed to load")
			}
		}
		return nil
	},
}

var imageCompressCmd = &cobra.Command{
	Use:   "compress <in> <out>",
	Short: "Downscale and re-encode an image as JPEG",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := requireApp()
		if err != nil {
			return err
		}
		in, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("open input: %w", err)
		}
		defer in.Close()

		out, err := os.Create(args[1])
		if err != nil {
			return fmt.Errorf("create output: %w", err)
		}
		size, err := images.Compress(in, out, imageQuality, imageMaxWidth)
		if cerr := out.Close(); err == nil {
			err = cerr
		}
		if err != nil {
			_ = os.Remove(args[1])
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), a.Renderer.RenderSuccess(
			fmt.Sprintf("%s (%dx%d)", args[1], size.Width, size.Height)))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(imageCmd)
	imageCmd.AddCommand(imageResolveCmd, imageSizeCmd, imagePreloadCmd, imageCompressCmd)

	imageCmd.PersistentFlags().StringVarP(&imageCategory, "category", "c", string(entity.ImageDefault), "fallback image category")

	imageResolveCmd.Flags().IntVar(&imageThumbW, "thumb-width", 0, "append thumbnail width parameter")
	imageResolveCmd.Flags().IntVar(&imageThumbH, "thumb-height", 0, "append thumbnail height parameter")

	imageCompressCmd.Flags().Float64VarP(&imageQuality, "quality", "q", images.DefaultQuality, "JPEG quality between 0 and 1")
	imageCompressCmd.Flags().IntVar(&imageMaxWidth, "max-width", images.DefaultMaxWidth, "maximum width and height in pixels")
}

func runImageResolve(cmd *cobra.Command, args []string) error {
	a, err := requireApp()
	if err != nil {
		return err
	}
	resolver := a.Services.Images
	for _, arg := range args {
		resolved := resolver.Resolve(arg, entity.ImageCategory(imageCategory))
		if imageThumbW > 0 || imageThumbH > 0 {
			resolved = resolver.Thumbnail(resolved, imageThumbW, imageThumbH)
		}
		fmt.Fprintln(cmd.OutOrStdout(), resolved)
	}
	return nil
}
