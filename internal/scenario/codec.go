package scenario

import (
	"context"
	"encoding/json"
	"io"
	"os"
	"strings"

	"github.com/go-faster/errors"
	"github.com/go-faster/jx"
	pgzip "github.com/klauspost/pgzip"
	"golang.org/x/sync/errgroup"
)

// Decode reads a JSON array of scenario inputs. Unknown fields and data
// after the array are rejected.
func Decode(r io.Reader) ([]Input, error) {
	var inputs []Input
	d := json.NewDecoder(r)
	d.DisallowUnknownFields()
	if err := d.Decode(&inputs); err != nil {
		return nil, errors.Wrap(err, "decode scenarios")
	}
	if _, err := d.Token(); !errors.Is(err, io.EOF) {
		return nil, errors.New("decode scenarios: unexpected data after array")
	}
	return inputs, nil
}

// LoadFile reads scenarios from a file. Files ending in .gz are decompressed.
func LoadFile(path string) ([]Input, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "open %s", path)
	}
	defer func() { _ = f.Close() }()

	var r io.Reader = f
	if strings.HasSuffix(path, ".gz") {
		gz, err := pgzip.NewReader(f)
		if err != nil {
			return nil, errors.Wrapf(err, "create gzip reader for %s", path)
		}
		defer func() { _ = gz.Close() }()
		r = gz
	}

	inputs, err := Decode(r)
	if err != nil {
		return nil, errors.Wrapf(err, "read %s", path)
	}
	return inputs, nil
}

// LoadFiles reads several scenario files concurrently and concatenates their
// scenarios in argument order.
func LoadFiles(ctx context.Context, paths ...string) ([]Input, error) {
	results := make([][]Input, len(paths))

	g, ctx := errgroup.WithContext(ctx)
	for i, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			inputs, err := LoadFile(path)
			if err != nil {
				return err
			}
			results[i] = inputs
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var all []Input
	for _, r := range results {
		all = append(all, r...)
	}
	return all, nil
}

// Encode writes outputs as an indented JSON array. Keys are emitted in
// lexicographic order at every level and validationErrors is omitted when
// there are none.
func Encode(w io.Writer, outputs []Output) error {
	var e jx.Encoder
	e.SetIdent(2)

	e.Arr(func(e *jx.Encoder) {
		for _, out := range outputs {
			encodeOutput(e, out)
		}
	})

	if _, err := w.Write(append(e.Bytes(), '\n')); err != nil {
		return errors.Wrap(err, "write results")
	}
	return nil
}

func encodeOutput(e *jx.Encoder, out Output) {
	e.Obj(func(e *jx.Encoder) {
		e.Field("result", func(e *jx.Encoder) {
			e.Obj(func(e *jx.Encoder) {
				e.Field("discount", func(e *jx.Encoder) { e.Str(out.Result.Discount) })
				e.Field("subtotal", func(e *jx.Encoder) { e.Str(out.Result.Subtotal) })
				e.Field("tax", func(e *jx.Encoder) { e.Str(out.Result.Tax) })
				e.Field("total", func(e *jx.Encoder) { e.Str(out.Result.Total) })
			})
		})
		e.Field("scenarioName", func(e *jx.Encoder) {
			if out.ScenarioName == nil {
				e.Null()
				return
			}
			e.Str(*out.ScenarioName)
		})
		if len(out.ValidationErrors) > 0 {
			e.Field("validationErrors", func(e *jx.Encoder) {
				e.Arr(func(e *jx.Encoder) {
					for _, msg := range out.ValidationErrors {
						e.Str(msg)
					}
				})
			})
		}
	})
}
