package config

import "github.com/ziadkadry99/casegallery/internal/carousel"

// DefaultConfigFile is the config file looked up in the working directory.
const DefaultConfigFile = ".casegallery.yml"

// DefaultVideos are the demo videos shown when no list or directory is configured.
var DefaultVideos = []carousel.Video{
	{
		Src:   "static/videos/1.mp4",
		Title: "Video Demo 1: Visual Search with Reasoning: The model first performs intelligent cropping and zooming on the input image to precisely focus on the key visual cue, the Chinese characters on the signboard. It then invokes image search for initial geolocation, followed by text-based search to conduct cross-modal semantic verification.",
	},
	{
		Src:   "static/videos/水杯条形码.mp4",
		Title: "Video Demo 2: Image Cropping and Zoom In",
	},
	{
		Src:   "static/videos/旋转.mp4",
		Title: "Video Demo 3: R1V4-Lite performs rotation and structural reconstruction analysis on the input image, demonstrating active visual reasoning capabilities in understanding spatial relationships and geometric transformations.",
	},
	{
		Src:   "static/videos/录屏2025-11-10 21.11.44.mov",
		Title: "Video Demo 4: Deep Research",
	},
	{
		Src:   "static/videos/病理放大.mp4",
		Title: "Video Demo 5: The model demonstrates breakthrough capabilities in medical image understanding and cross-domain knowledge-integrated reasoning, offering a verifiable and practical pathway toward intelligent pathological diagnosis.",
	},
	{
		Src:   "static/videos/茶叶2.mp4",
		Title: "Video Demo 6: R1V4-Lite excels in e-commerce intelligence and content understanding. Faced with complex image inputs, it successfully identifies the product source and provides a detailed product description.",
	},
	{
		Src:   "static/videos/电商.mp4",
		Title: "Video Demo 7: R1V4-Lite excels in e-commerce intelligence and content understanding. Faced with complex image inputs, it successfully identifies the product source and provides a detailed product description.",
	},
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Title:           "Reasoning Cases",
		Data:            "static/data/cases.json",
		StaticDir:       "static",
		OutputDir:       "site",
		DefaultLanguage: "python",
		CodeHighlight:   HighlightClient,
		HighlightStyle:  "github",
		Thumbnails: ThumbnailConfig{
			Enabled:  false,
			MaxWidth: 960,
		},
		Videos: append([]carousel.Video(nil), DefaultVideos...),
		Server: ServerConfig{
			Port: 8080,
		},
		Log: LogConfig{
			Level: LogNormal,
		},
	}
}
