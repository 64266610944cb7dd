package ai

import (
	"context"
	"time"

	"github.com/Berachem/reposcan/internal/types"
	"go.uber.org/zap"
)

// truncationMarker is appended to content that was cut before sending.
const truncationMarker = "\n... (truncated for analysis)"

// Analyzer sends bounded file content to a Client and parses the reply
// into findings.
type Analyzer struct {
	client     Client
	maxContent int
	timeout    time.Duration
	log        *zap.SugaredLogger
}

// NewAnalyzer creates an Analyzer. maxFileSize is the scan's per-file
// size ceiling; the content actually sent is capped well below it,
// at min(1000, maxFileSize/4) bytes, to keep external round-trips fast.
func NewAnalyzer(client Client, maxFileSize int64, timeout time.Duration, log *zap.SugaredLogger) *Analyzer {
	maxContent := int(maxFileSize / 4)
	if maxContent > 1000 {
		maxContent = 1000
	}
	if maxContent < 1 {
		maxContent = 1
	}
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Analyzer{
		client:     client,
		maxContent: maxContent,
		timeout:    timeout,
		log:        log,
	}
}

func (a *Analyzer) Name() string { return "ai" }

// Analyze runs the external analysis on one file. It never fails: call
// errors and timeouts are logged and degrade to an empty result so the
// scan keeps going. Each call carries its own deadline; a hung backend
// cannot stall the whole scan.
func (a *Analyzer) Analyze(ctx context.Context, relPath string, content []byte) []types.Finding {
	text := string(content)
	if len(text) > a.maxContent {
		text = text[:a.maxContent] + truncationMarker
	}

	callCtx := ctx
	if a.timeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, a.timeout)
		defer cancel()
	}

	response, err := a.client.Generate(callCtx, buildPrompt(relPath, text))
	if err != nil {
		a.log.Warnw("external analysis failed, continuing scan", "file", relPath, "error", err)
		return nil
	}

	return ParseResponse(response, relPath)
}
