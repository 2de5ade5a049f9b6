package main

import (
	"context"
	"encoding/csv"
	"errors"
	"flag"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"minatostudio/captioner/captioner"
	"minatostudio/captioner/model"
)

type cliOptions struct {
	configPath   string
	imagePath    string
	inputDir     string
	tone         string
	beamWidth    int
	alternatives int
	outputPath   string
	outputDir    string
	stdout       bool
}

type resultRow struct {
	path   string
	result captioner.CaptionResult
	extras []string
}

func main() {
	opts, err := parseFlags()
	if err != nil {
		log.Fatalf("captioner-cli: %v", err)
	}
	if err := run(opts); err != nil {
		log.Fatalf("captioner-cli: %v", err)
	}
}

func parseFlags() (cliOptions, error) {
	var opts cliOptions
	flag.StringVar(&opts.configPath, "config", "", "Path to config.json (default: ./config.json)")
	flag.StringVar(&opts.imagePath, "image", "", "Single image file to caption")
	flag.StringVar(&opts.inputDir, "input-dir", "", "Directory of images to caption")
	flag.StringVar(&opts.tone, "tone", "", "Caption tone (default from config)")
	flag.IntVar(&opts.beamWidth, "beam-width", 0, "Beam width for decoding (default from config, 1 = greedy)")
	flag.IntVar(&opts.alternatives, "alternatives", 0, "Also generate this many alternative captions per image")
	flag.StringVar(&opts.outputPath, "output", "", "CSV file to write results (default uses --output-dir/captions_*.csv)")
	flag.StringVar(&opts.outputDir, "output-dir", "csv", "Directory where result CSVs are written when --output is omitted")
	flag.BoolVar(&opts.stdout, "stdout", false, "Print results to STDOUT")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s --image FILE | --input-dir DIR [options]\n\n", filepath.Base(os.Args[0]))
		flag.PrintDefaults()
	}
	flag.Parse()

	opts.configPath = strings.TrimSpace(opts.configPath)
	opts.imagePath = strings.TrimSpace(opts.imagePath)
	opts.inputDir = strings.TrimSpace(opts.inputDir)
	opts.tone = strings.TrimSpace(opts.tone)
	opts.outputPath = strings.TrimSpace(opts.outputPath)
	opts.outputDir = strings.TrimSpace(opts.outputDir)

	if opts.imagePath == "" && opts.inputDir == "" {
		flag.Usage()
		return opts, errors.New("missing required --image file or --input-dir directory")
	}
	return opts, nil
}

func run(opts cliOptions) error {
	cfg, err := captioner.LoadConfig(opts.configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if opts.beamWidth > 0 {
		cfg.BeamWidth = opts.beamWidth
	}
	if opts.tone != "" {
		cfg.Tone = opts.tone
	}
	tone, ok := captioner.ParseTone(cfg.Tone)
	if !ok {
		return fmt.Errorf("unknown tone %q", cfg.Tone)
	}

	logger := log.New(os.Stderr, "", log.LstdFlags)
	service, err := buildService(cfg, logger)
	if err != nil {
		return fmt.Errorf("init service: %w", err)
	}
	defer service.Close()

	paths, err := collectImages(opts.imagePath, opts.inputDir)
	if err != nil {
		return err
	}
	if len(paths) == 0 {
		return errors.New("no images found to caption")
	}

	ctx := context.Background()
	rows := make([]resultRow, 0, len(paths))
	for _, path := range paths {
		row, err := captionFile(ctx, service, path, tone, opts.alternatives)
		if err != nil {
			logger.Printf("skipping %s: %v", path, err)
			continue
		}
		rows = append(rows, row)
	}
	if len(rows) == 0 {
		return errors.New("all images failed to caption")
	}

	outputPath, err := resolveOutputPath(opts.outputPath, opts.outputDir)
	if err != nil {
		return err
	}
	if err := writeResultCSV(outputPath, rows); err != nil {
		return err
	}
	fmt.Printf("wrote %d captions to %s\n", len(rows), outputPath)

	if opts.stdout {
		printSummary(rows)
	}
	return nil
}

// buildService mirrors the GUI wiring: the encoder and classifier are
// required, the decoder degrades to template captions when its assets are
// missing.
func buildService(cfg captioner.Config, logger *log.Logger) (*captioner.Service, error) {
	encoder, err := model.NewEncoder(cfg.Model.OrtDLL, cfg.Model.EncoderPath, cfg.Model.FeatureDim)
	if err != nil {
		return nil, fmt.Errorf("init encoder: %w", err)
	}
	classifier, err := model.NewClassifier(cfg.Model.OrtDLL, cfg.Model.ClassifierPath, cfg.Model.LabelsPath)
	if err != nil {
		return nil, fmt.Errorf("init classifier: %w", err)
	}

	var decoder *captioner.Decoder
	vocab, err := model.LoadTokenizerVocabulary(cfg.Model.TokenizerPath)
	if err != nil {
		logger.Printf("tokenizer unavailable, using template captions only: %v", err)
	} else {
		step, err := model.NewStepModel(cfg.Model.OrtDLL, cfg.Model.DecoderPath, cfg.MaxLength, vocab.Size())
		if err != nil {
			logger.Printf("decoder unavailable, using template captions only: %v", err)
		} else {
			decoder = captioner.NewDecoder(vocab, step, cfg.MaxLength)
		}
	}

	return captioner.NewService(encoder, classifier, decoder, cfg, nil, logger)
}

func collectImages(imagePath, inputDir string) ([]string, error) {
	if imagePath != "" {
		return []string{imagePath}, nil
	}
	entries, err := os.ReadDir(inputDir)
	if err != nil {
		return nil, fmt.Errorf("read input dir: %w", err)
	}
	var paths []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(entry.Name())) {
		case ".jpg", ".jpeg", ".png", ".gif":
			paths = append(paths, filepath.Join(inputDir, entry.Name()))
		}
	}
	sort.Strings(paths)
	return paths, nil
}

func captionFile(ctx context.Context, service *captioner.Service, path string, tone captioner.Tone, alternatives int) (resultRow, error) {
	f, err := os.Open(path)
	if err != nil {
		return resultRow{}, fmt.Errorf("open image: %w", err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return resultRow{}, fmt.Errorf("decode image: %w", err)
	}

	result, err := service.GenerateCaption(ctx, img, tone)
	if err != nil {
		return resultRow{}, err
	}

	row := resultRow{path: path, result: result}
	if alternatives > 0 {
		extras, err := service.GenerateAlternatives(ctx, img, alternatives, tone)
		if err != nil {
			return resultRow{}, fmt.Errorf("alternatives: %w", err)
		}
		row.extras = extras
	}
	return row, nil
}

func resolveOutputPath(path, dir string) (string, error) {
	if path != "" {
		absPath, err := filepath.Abs(path)
		if err != nil {
			return "", fmt.Errorf("resolve output path: %w", err)
		}
		if err := os.MkdirAll(filepath.Dir(absPath), 0o755); err != nil {
			return "", fmt.Errorf("create output directory: %w", err)
		}
		return absPath, nil
	}
	if dir == "" {
		dir = "csv"
	}
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolve output dir: %w", err)
	}
	if err := os.MkdirAll(absDir, 0o755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}
	filename := fmt.Sprintf("captions_%s.csv", time.Now().Format("20060102150405"))
	return filepath.Join(absDir, filename), nil
}

func writeResultCSV(path string, rows []resultRow) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create result file: %w", err)
	}
	defer f.Close()

	writer := csv.NewWriter(f)
	header := []string{"file", "caption", "scene", "confidence", "alternatives"}
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for i, row := range rows {
		record := []string{
			row.path,
			row.result.Caption,
			row.result.Scene,
			fmt.Sprintf("%.3f", row.result.Confidence),
			strings.Join(row.extras, " | "),
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("write row %d: %w", i, err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("flush result: %w", err)
	}
	return nil
}

func printSummary(rows []resultRow) {
	fmt.Println()
	fmt.Println("==== caption results ====")
	for i, row := range rows {
		fmt.Printf("%d. %s\n", i+1, filepath.Base(row.path))
		fmt.Printf("    %s\n", row.result.Caption)
		fmt.Printf("    scene=%s confidence=%.3f\n", row.result.Scene, row.result.Confidence)
		for _, extra := range row.extras {
			fmt.Printf("      - %s\n", extra)
		}
	}
}
