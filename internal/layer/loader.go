package layer

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"github.com/twpayne/go-geom/encoding/geojson"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/closed-loop/citymap/internal/fetcher"
)

// Loader runs one load cycle: every layer is fetched, decoded and rendered
// concurrently, and written to the controller independently of the others.
type Loader struct {
	src     fetcher.Fetcher
	ctrl    *Controller
	timeout time.Duration
}

// NewLoader returns a loader reading from src and writing to ctrl. timeout
// bounds each layer's load; zero means no bound beyond ctx.
func NewLoader(src fetcher.Fetcher, ctrl *Controller, timeout time.Duration) *Loader {
	return &Loader{src: src, ctrl: ctrl, timeout: timeout}
}

// Result is the outcome of one layer's load.
type Result struct {
	Layer    Kind          `json:"layer"`
	Features int           `json:"features"`
	Class    string        `json:"error_class,omitempty"`
	Error    string        `json:"error,omitempty"`
	Duration time.Duration `json:"duration_ns"`
	Err      error         `json:"-"`
}

// Report is the outcome of a load cycle.
type Report struct {
	LoadID  string    `json:"load_id"`
	Started time.Time `json:"started"`
	Results []Result  `json:"results"`
}

// Failed returns the results whose layer could not be loaded.
func (r Report) Failed() []Result {
	var out []Result
	for _, res := range r.Results {
		if res.Err != nil {
			out = append(out, res)
		}
	}
	return out
}

// AllFailed reports whether no layer loaded.
func (r Report) AllFailed() bool {
	return len(r.Results) > 0 && len(r.Failed()) == len(r.Results)
}

// Load fetches all layers. A failing layer is emptied and carries its error;
// it never cancels the other loads.
func (l *Loader) Load(ctx context.Context) Report {
	report := Report{
		LoadID:  uuid.NewString(),
		Started: time.Now(),
		Results: make([]Result, len(Kinds)),
	}
	l.ctrl.setLoadID(report.LoadID)

	var g errgroup.Group
	for i, kind := range Kinds {
		g.Go(func() error {
			report.Results[i] = l.loadLayer(ctx, report.LoadID, kind)
			return nil
		})
	}
	_ = g.Wait()

	return report
}

func (l *Loader) loadLayer(ctx context.Context, loadID string, kind Kind) Result {
	start := time.Now()
	if l.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, l.timeout)
		defer cancel()
	}

	features, err := l.fetchAndRender(ctx, kind)
	res := Result{Layer: kind, Duration: time.Since(start)}
	if err != nil {
		l.ctrl.Fail(kind, err)
		res.Err = err
		res.Class = Classify(err)
		res.Error = err.Error()
		zap.L().Error("layer: load failed",
			zap.String("load_id", loadID),
			zap.String("layer", string(kind)),
			zap.String("class", res.Class),
			zap.Error(err),
		)
		return res
	}

	l.ctrl.Set(kind, features)
	res.Features = len(features)
	zap.L().Info("layer: loaded",
		zap.String("load_id", loadID),
		zap.String("layer", string(kind)),
		zap.Int("features", res.Features),
		zap.Duration("duration", res.Duration),
	)
	return res
}

func (l *Loader) fetchAndRender(ctx context.Context, kind Kind) ([]*geojson.Feature, error) {
	body, err := l.src.Open(ctx, kind.Endpoint())
	if err != nil {
		fe := &FetchError{Layer: kind, Endpoint: kind.Endpoint(), Err: err}
		var se *fetcher.StatusError
		if errors.As(err, &se) {
			fe.StatusCode = se.StatusCode
		}
		return nil, fe
	}
	defer body.Close() //nolint:errcheck

	switch kind {
	case Crime:
		collections, err := decodeCollections(body)
		if err != nil {
			return nil, &FormatError{Layer: kind, Collection: -1, Feature: -1, Err: err}
		}
		return RenderCrime(collections)
	case Schools, Parks:
		fc, err := fetcher.DecodeJSON[*geojson.FeatureCollection](body)
		if err != nil {
			return nil, &FormatError{Layer: kind, Collection: -1, Feature: -1, Err: err}
		}
		if fc == nil {
			return nil, &FormatError{Layer: kind, Collection: -1, Feature: -1, Err: errNullDocument}
		}
		if kind == Schools {
			return RenderSchools(fc)
		}
		return RenderParks(fc)
	}
	return nil, &FormatError{Layer: kind, Collection: -1, Feature: -1, Err: eris.Errorf("unknown layer %q", kind)}
}

var (
	errEmptyDocument = eris.New("empty document")
	errNullDocument  = eris.New("null document")
)

// decodeCollections accepts either an array of feature collections or a
// single collection.
func decodeCollections(r io.Reader) ([]*geojson.FeatureCollection, error) {
	br := bufio.NewReader(r)
	first, err := peekNonSpace(br)
	if err != nil {
		return nil, err
	}
	if first == '{' {
		fc, err := fetcher.DecodeJSON[*geojson.FeatureCollection](br)
		if err != nil {
			return nil, err
		}
		return []*geojson.FeatureCollection{fc}, nil
	}

	collections, err := fetcher.DecodeJSON[[]*geojson.FeatureCollection](br)
	if err != nil {
		return nil, err
	}
	if collections == nil {
		return nil, errNullDocument
	}
	for i, fc := range collections {
		if fc == nil {
			return nil, eris.Errorf("collection %d is null", i)
		}
	}
	return collections, nil
}

func peekNonSpace(br *bufio.Reader) (byte, error) {
	for {
		b, err := br.ReadByte()
		if err != nil {
			if err == io.EOF {
				return 0, errEmptyDocument
			}
			return 0, err
		}
		if !bytes.ContainsRune([]byte(" \t\r\n"), rune(b)) {
			return b, br.UnreadByte()
		}
	}
}
