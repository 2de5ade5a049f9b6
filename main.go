package main

import (
	"context"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"log"
	"os"
	"strings"
	"sync"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/data/binding"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/widget"

	"minatostudio/captioner/captioner"
	"minatostudio/captioner/model"
)

func main() {
	fyneApp := app.NewWithID("minatostudio.captioner")
	win := fyneApp.NewWindow("Captioner")
	win.Resize(fyne.NewSize(1024, 720))

	cfg, err := captioner.LoadConfig("")
	if err != nil {
		showFatalError(win, fmt.Errorf("failed to load configuration: %w", err))
		return
	}

	loggerBinding := binding.NewString()
	logCapture := newLogCapture(loggerBinding, 300)
	logger := log.New(io.MultiWriter(os.Stdout, logCapture), "", log.LstdFlags)

	service, err := buildService(cfg, logger)
	if err != nil {
		logCapture.Write([]byte(fmt.Sprintf("[ERROR] %v\n", err)))
		showFatalError(win, fmt.Errorf("failed to initialize models: %w", err))
		return
	}
	defer service.Close()

	ctx := context.Background()
	cache := newCaptionCache(cfg.CacheDir)

	cfgMu := sync.Mutex{}
	saveConfig := func() {
		cfgMu.Lock()
		defer cfgMu.Unlock()
		if err := captioner.SaveConfig("", cfg); err != nil {
			logger.Printf("failed to save configuration: %v", err)
		}
	}
	defer saveConfig()

	currentTone, _ := captioner.ParseTone(cfg.Tone)
	var currentImage image.Image
	var currentPath string

	preview := canvas.NewImageFromResource(nil)
	preview.FillMode = canvas.ImageFillContain
	preview.SetMinSize(fyne.NewSize(360, 300))

	statusLabel := widget.NewLabel("Ready")
	captionLabel := widget.NewLabel("")
	captionLabel.Wrapping = fyne.TextWrapWord
	sceneLabel := widget.NewLabel("")
	alternativesLabel := widget.NewLabel("")
	alternativesLabel.Wrapping = fyne.TextWrapWord

	setResult := func(result captioner.CaptionResult) {
		captionLabel.SetText(result.Caption)
		origin := ""
		if result.FromCache {
			origin = " (cached)"
		}
		sceneLabel.SetText(fmt.Sprintf("Scene: %s (%.2f)%s", result.Scene, result.Confidence, origin))
	}

	openBtn := widget.NewButton("Open image", func() {
		fd := dialog.NewFileOpen(func(rc fyne.URIReadCloser, err error) {
			if err != nil {
				showError(win, err)
				return
			}
			if rc == nil {
				return
			}
			defer rc.Close()
			img, _, err := image.Decode(rc)
			if err != nil {
				showError(win, fmt.Errorf("failed to decode image: %w", err))
				return
			}
			currentImage = img
			currentPath = rc.URI().Path()
			preview.File = currentPath
			preview.Refresh()
			captionLabel.SetText("")
			sceneLabel.SetText("")
			alternativesLabel.SetText("")
			statusLabel.SetText("Image loaded")
		}, win)
		fd.SetFilter(storageFilter([]string{".jpg", ".jpeg", ".png", ".gif"}))
		fd.Show()
	})

	toneSelect := widget.NewSelect(toneChoices(), func(val string) {
		tone, ok := captioner.ParseTone(val)
		if !ok {
			return
		}
		currentTone = tone
		cfgMu.Lock()
		cfg.Tone = tone.String()
		cfgMu.Unlock()
		saveConfig()
	})
	toneSelect.SetSelected(currentTone.String())

	beamSlider := widget.NewSlider(1, 10)
	beamSlider.Step = 1
	beamSlider.SetValue(float64(cfg.BeamWidth))
	beamLabel := widget.NewLabel(fmt.Sprintf("Beam width: %d", cfg.BeamWidth))
	beamSlider.OnChanged = func(v float64) {
		width := int(v)
		beamLabel.SetText(fmt.Sprintf("Beam width: %d", width))
		cfgMu.Lock()
		cfg.BeamWidth = width
		localCfg := cfg
		cfgMu.Unlock()
		service.UpdateConfig(localCfg)
		saveConfig()
	}

	var generateBtn *widget.Button
	generateBtn = widget.NewButton("Generate caption", func() {
		if currentImage == nil {
			showError(win, fmt.Errorf("no image selected"))
			return
		}
		generateBtn.Disable()
		statusLabel.SetText("Generating...")
		go func(img image.Image, tone captioner.Tone) {
			start := time.Now()
			result, err := captionImage(ctx, service, cache, img, tone)
			elapsed := time.Since(start)
			fyne.CurrentApp().Driver().CallOnMainThread(func() {
				generateBtn.Enable()
				if err != nil {
					statusLabel.SetText("Caption failed")
					showError(win, err)
					return
				}
				setResult(result)
				statusLabel.SetText(fmt.Sprintf("Done in %.2fs", elapsed.Seconds()))
			})
		}(currentImage, currentTone)
	})

	var alternativesBtn *widget.Button
	alternativesBtn = widget.NewButton("Alternatives", func() {
		if currentImage == nil {
			showError(win, fmt.Errorf("no image selected"))
			return
		}
		alternativesBtn.Disable()
		statusLabel.SetText("Generating alternatives...")
		go func(img image.Image, tone captioner.Tone) {
			captions, err := service.GenerateAlternatives(ctx, img, 0, tone)
			fyne.CurrentApp().Driver().CallOnMainThread(func() {
				alternativesBtn.Enable()
				if err != nil {
					statusLabel.SetText("Alternatives failed")
					showError(win, err)
					return
				}
				lines := make([]string, len(captions))
				for i, c := range captions {
					lines[i] = fmt.Sprintf("%d. %s", i+1, c)
				}
				alternativesLabel.SetText(strings.Join(lines, "\n"))
				statusLabel.SetText("Ready")
			})
		}(currentImage, currentTone)
	})

	logLabel := widget.NewLabelWithData(loggerBinding)
	logLabel.Wrapping = fyne.TextWrapWord
	logContainer := container.NewVScroll(logLabel)
	logContainer.SetMinSize(fyne.NewSize(200, 120))

	controls := container.NewVBox(
		container.NewHBox(openBtn, generateBtn, alternativesBtn, statusLabel),
		widget.NewSeparator(),
		container.NewVBox(
			widget.NewLabel("Settings"),
			toneSelect,
			container.NewHBox(beamLabel, beamSlider),
		),
		widget.NewSeparator(),
		widget.NewLabel("Caption"),
		captionLabel,
		sceneLabel,
		widget.NewLabel("Alternatives"),
		alternativesLabel,
		widget.NewSeparator(),
		widget.NewLabel("Log"),
		logContainer,
	)

	root := container.NewHSplit(preview, controls)
	root.Offset = 0.45
	win.SetContent(root)

	win.ShowAndRun()
}

// buildService wires the ONNX collaborators into a captioner.Service. A
// missing decoder or tokenizer is not fatal: the service then falls back to
// tone-templated captions.
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

// captionImage consults the perceptual-hash cache before asking the service.
func captionImage(ctx context.Context, service *captioner.Service, cache *captionCache, img image.Image, tone captioner.Tone) (captioner.CaptionResult, error) {
	key, err := cacheKeyFor(img, tone)
	if err == nil {
		if result, ok := cache.lookup(key); ok {
			return result, nil
		}
	}
	result, err := service.GenerateCaption(ctx, img, tone)
	if err != nil {
		return captioner.CaptionResult{}, err
	}
	if key != "" {
		cache.store(key, result)
	}
	return result, nil
}

func toneChoices() []string {
	tones := captioner.Tones()
	out := make([]string, len(tones))
	for i, t := range tones {
		out[i] = t.String()
	}
	return out
}

func showFatalError(win fyne.Window, err error) {
	content := widget.NewLabel(err.Error())
	win.SetContent(content)
	dialog.ShowError(err, win)
	win.ShowAndRun()
}

func showError(win fyne.Window, err error) {
	if err != nil {
		dialog.ShowError(err, win)
	}
}

func storageFilter(exts []string) fyne.FileFilter {
	return storage.NewExtensionFileFilter(exts)
}

type logCapture struct {
	mu      sync.Mutex
	lines   []string
	limit   int
	binding binding.String
}

func newLogCapture(b binding.String, limit int) *logCapture {
	return &logCapture{binding: b, limit: limit}
}

func (l *logCapture) Write(p []byte) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	text := strings.ReplaceAll(string(p), "\r\n", "\n")
	for _, part := range strings.Split(text, "\n") {
		if part == "" {
			continue
		}
		l.lines = append(l.lines, part)
	}
	if len(l.lines) > l.limit {
		l.lines = l.lines[len(l.lines)-l.limit:]
	}
	_ = l.binding.Set(strings.Join(l.lines, "\n"))
	return len(p), nil
}
