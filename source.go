package formz

import (
	"context"
	"fmt"
	"os"

	"github.com/fsnotify/fsnotify"
	"github.com/zoobzio/capitan"
)

// Source observes an external byte source and emits on a channel when it
// changes. Implementations must emit the current value immediately upon
// Watch() being called so consumers start from the present state.
type Source interface {
	// Watch begins observing the source and returns a channel that emits
	// raw bytes when changes occur. The channel is closed when the context
	// is canceled or an unrecoverable error occurs.
	Watch(ctx context.Context) (<-chan []byte, error)
}

// ChannelSource wraps an existing byte channel as a Source.
// Useful for testing and custom sources that already produce bytes.
type ChannelSource struct {
	ch   <-chan []byte
	sync bool
}

// NewChannelSource creates a ChannelSource that forwards values from the
// given channel through an internal goroutine.
func NewChannelSource(ch <-chan []byte) *ChannelSource {
	return &ChannelSource{ch: ch, sync: false}
}

// NewSyncChannelSource creates a ChannelSource that returns the source
// channel directly without an intermediate goroutine, for deterministic
// testing.
func NewSyncChannelSource(ch <-chan []byte) *ChannelSource {
	return &ChannelSource{ch: ch, sync: true}
}

// Watch returns a channel that emits values from the wrapped channel.
func (s *ChannelSource) Watch(ctx context.Context) (<-chan []byte, error) {
	if s.sync {
		return s.ch, nil
	}

	out := make(chan []byte)
	go func() {
		defer close(out)
		for {
			select {
			case <-ctx.Done():
				return
			case v, ok := <-s.ch:
				if !ok {
					return
				}
				select {
				case out <- v:
				case <-ctx.Done():
					return
				}
			}
		}
	}()
	return out, nil
}

// FileSource watches a file for changes and emits its contents.
// Use it to drive field content or live schema reload from disk.
type FileSource struct {
	path string
}

// NewFileSource creates a FileSource for the given file path.
func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

// Watch begins watching the file and returns a channel that emits the file
// contents whenever the file is written. The current contents are emitted
// immediately.
func (s *FileSource) Watch(ctx context.Context) (<-chan []byte, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}

	if err := watcher.Add(s.path); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("failed to watch file %s: %w", s.path, err)
	}

	out := make(chan []byte)

	go func() {
		defer close(out)
		defer watcher.Close()

		// Emit initial contents
		if data, err := os.ReadFile(s.path); err == nil {
			select {
			case out <- data:
			case <-ctx.Done():
				return
			}
		}

		for {
			select {
			case <-ctx.Done():
				return

			case event, ok := <-watcher.Events:
				if !ok {
					return
				}

				// Only emit on write or create events
				if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
					continue
				}

				data, err := os.ReadFile(s.path)
				if err != nil {
					continue
				}

				select {
				case out <- data:
				case <-ctx.Done():
					return
				}

			case _, ok := <-watcher.Errors:
				if !ok {
					return
				}
				// Continue watching despite errors
			}
		}
	}()

	return out, nil
}

// SchemaStream watches src and emits a freshly parsed Schema for every
// emission, the current document first. Documents that fail to parse or
// validate are skipped with a SchemaRejected signal; the stream keeps
// watching for a valid revision.
func SchemaStream(ctx context.Context, src Source, codec Codec) (<-chan *Schema, error) {
	raw, err := src.Watch(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to start source: %w", err)
	}

	out := make(chan *Schema)
	go func() {
		defer close(out)
		for {
			select {
			case <-ctx.Done():
				return
			case data, ok := <-raw:
				if !ok {
					return
				}

				schema, err := ParseSchema(data, codec)
				if err != nil {
					capitan.Emit(ctx, SchemaRejected,
						KeyError.Field(err.Error()),
					)
					continue
				}

				capitan.Emit(ctx, SchemaLoaded,
					KeyFields.Field(len(schema.Fields)),
				)

				select {
				case out <- schema:
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	return out, nil
}

// BindContent pipes a Source into the field's content: every emission
// becomes a SetContent call with the bytes as text, so an external process
// can drive a field. It returns once the source is started; forwarding
// continues until ctx is canceled or the source closes.
func BindContent(ctx context.Context, fs *FieldState, src Source) error {
	raw, err := src.Watch(ctx)
	if err != nil {
		return fmt.Errorf("failed to start source: %w", err)
	}

	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case data, ok := <-raw:
				if !ok {
					return
				}
				fs.SetContent(ctx, string(data))
			}
		}
	}()

	return nil
}
