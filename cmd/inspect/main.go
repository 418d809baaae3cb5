package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"mime"
	"os"
	"path/filepath"

	"github.com/homelens/inspect-agent/internal/llm"
	"github.com/homelens/inspect-agent/internal/models"
	"github.com/homelens/inspect-agent/internal/setup"
	"github.com/homelens/inspect-agent/internal/setup/logger"
	"github.com/joho/godotenv"
)

// One-shot CLI: assess a single photo from disk and print the report.
func main() {
	imagePath := flag.String("image", "", "path to the photo to assess")
	area := flag.String("area", "", "room or area shown in the photo")
	bedrooms := flag.Int("bedrooms", -1, "bedroom count (-1 for unspecified)")
	manufactured := flag.Bool("manufactured", false, "the home is a manufactured home")
	notes := flag.String("notes", "", "free-text notes for the assessor")
	model := flag.String("model", "", "model id override")
	format := flag.String("format", "report", "output format: report or json")
	logLevel := flag.String("log-level", "warn", "log level")
	flag.Parse()

	log := logger.New(*logLevel)

	_ = godotenv.Load()

	if *imagePath == "" {
		fmt.Fprintln(os.Stderr, "usage: inspect -image photo.jpg [-area bathroom] [-bedrooms 3] [-format report|json]")
		os.Exit(2)
	}

	photo, err := os.ReadFile(*imagePath)
	if err != nil {
		log.Fatal().Err(err).Str("image", *imagePath).Msg("Failed to read photo")
	}

	mediaType := mime.TypeByExtension(filepath.Ext(*imagePath))
	if mediaType == "" {
		mediaType = "image/jpeg"
	}

	ctx := context.Background()
	cfg := setup.LoadConfig()
	deps, err := setup.Wire(ctx, cfg, &log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to wire dependencies")
	}

	evalCtx := models.EvaluationContext{
		Area:  *area,
		Notes: *notes,
	}
	if *bedrooms >= 0 {
		evalCtx.Bedrooms = bedrooms
	}
	if *manufactured {
		evalCtx.ManufacturedHome = manufactured
	}

	result, err := deps.Evaluator.Execute(ctx, evalCtx, llm.ImagePayload{
		MediaType: mediaType,
		Data:      photo,
	}, *model)
	if err != nil {
		log.Fatal().Err(err).Msg("Assessment failed")
	}

	if *format == "json" {
		encoded, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to encode result")
		}
		fmt.Println(string(encoded))
		return
	}

	fmt.Println(deps.Renderer.Render(result))
}
