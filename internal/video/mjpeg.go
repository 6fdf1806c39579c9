package video

import (
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/jpeg"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"strings"
	"sync"
)

// MJPEGOpener connects to motion-JPEG over HTTP
// (multipart/x-mixed-replace), the format served by phone and IP cameras.
type MJPEGOpener struct {
	Client *http.Client
}

// Open issues the request and starts a reader goroutine. ctx bounds the
// connect phase only; the stream lives until Close.
func (o MJPEGOpener) Open(ctx context.Context, addr string) (Stream, error) {
	client := o.Client
	if client == nil {
		client = http.DefaultClient
	}

	streamCtx, cancel := context.WithCancel(context.Background())
	stop := context.AfterFunc(ctx, cancel)

	req, err := http.NewRequestWithContext(streamCtx, http.MethodGet, addr, nil)
	if err != nil {
		stop()
		cancel()
		return nil, fmt.Errorf("%w: %w", ErrStreamOpen, err)
	}

	resp, err := client.Do(req)
	if !stop() {
		// connect deadline fired; the request context is already cancelled
		if err == nil {
			resp.Body.Close()
		}
		cancel()
		return nil, fmt.Errorf("%w: %w", ErrStreamOpen, context.DeadlineExceeded)
	}
	if err != nil {
		cancel()
		return nil, fmt.Errorf("%w: %w", ErrStreamOpen, err)
	}

	boundary, err := mjpegBoundary(resp)
	if err != nil {
		resp.Body.Close()
		cancel()
		return nil, fmt.Errorf("%w: %w", ErrStreamOpen, err)
	}

	s := &mjpegStream{
		body:   resp.Body,
		cancel: cancel,
		done:   make(chan struct{}),
	}
	go s.run(multipart.NewReader(resp.Body, boundary))
	return s, nil
}

func mjpegBoundary(resp *http.Response) (string, error) {
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unexpected status %s", resp.Status)
	}
	mediaType, params, err := mime.ParseMediaType(resp.Header.Get("Content-Type"))
	if err != nil {
		return "", fmt.Errorf("content type: %w", err)
	}
	if !strings.HasPrefix(mediaType, "multipart/") {
		return "", fmt.Errorf("content type %q is not a multipart stream", mediaType)
	}
	boundary := strings.TrimPrefix(params["boundary"], "--")
	if boundary == "" {
		return "", errors.New("multipart stream without boundary")
	}
	return boundary, nil
}

// mjpegStream decodes parts in the background into a single-slot mailbox.
// A new frame overwrites an unread one; Read never blocks.
type mjpegStream struct {
	body   io.Closer
	cancel context.CancelFunc
	done   chan struct{}
	once   sync.Once

	mu      sync.Mutex
	frame   image.Image
	fresh   bool
	err     error
	dropped uint64
}

func (s *mjpegStream) run(mr *multipart.Reader) {
	defer close(s.done)
	for {
		part, err := mr.NextPart()
		if err != nil {
			if err == io.EOF {
				err = io.ErrUnexpectedEOF
			}
			s.fail(err)
			return
		}
		img, _, err := image.Decode(part)
		part.Close()
		if err != nil {
			// A corrupt part is skipped; the connection itself is fine.
			continue
		}
		s.publish(img)
	}
}

func (s *mjpegStream) publish(img image.Image) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fresh {
		s.dropped++
	}
	s.frame = img
	s.fresh = true
}

func (s *mjpegStream) fail(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err == nil {
		s.err = err
	}
}

func (s *mjpegStream) Read() (image.Image, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fresh {
		s.fresh = false
		return s.frame, true, nil
	}
	if s.err != nil {
		return nil, false, fmt.Errorf("%w: %w", ErrStreamRead, s.err)
	}
	return nil, false, nil
}

// Close cancels the request and waits for the reader goroutine.
func (s *mjpegStream) Close() error {
	var err error
	s.once.Do(func() {
		s.cancel()
		err = s.body.Close()
		<-s.done
		s.fail(errors.New("stream closed"))

		s.mu.Lock()
		s.frame = nil
		s.fresh = false
		s.mu.Unlock()
	})
	return err
}

// Dropped returns frames overwritten before they were read.
func (s *mjpegStream) Dropped() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dropped
}
