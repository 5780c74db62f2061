package http

import (
	"compress/gzip"
	"io"
	"net/http"
	"strings"
	"sync"
)

// Sync payloads are large, repetitive JSON bodies, so both directions are
// worth compressing. Writers and readers are pooled: every sync request
// paying for a fresh flate allocation shows up quickly under load.
var (
	gzipWriters = sync.Pool{
		New: func() any {
			return gzip.NewWriter(nil)
		},
	}

	gzipReaders = sync.Pool{
		New: func() any {
			return new(gzip.Reader)
		},
	}
)

// withGZip transparently decompresses gzip request bodies and compresses
// responses for clients that advertise gzip support.
func withGZip(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.Contains(r.Header.Get("Content-Encoding"), "gzip") && r.Body != nil {
			body, err := decompressedBody(r.Body)
			if err != nil {
				http.Error(w, "Invalid gzip data", http.StatusBadRequest)
				return
			}
			r.Body = body
			// Downstream handlers see a plain body.
			r.Header.Del("Content-Encoding")
		}

		if !strings.Contains(r.Header.Get("Accept-Encoding"), "gzip") {
			next.ServeHTTP(w, r)
			return
		}

		zw := gzipWriters.Get().(*gzip.Writer)
		zw.Reset(w)

		next.ServeHTTP(&gzipResponseWriter{ResponseWriter: w, zw: zw}, r)

		zw.Close()
		gzipWriters.Put(zw)
	})
}

// decompressedBody wraps the request body in a pooled gzip reader. The
// reader returns to the pool when the body is closed.
func decompressedBody(body io.ReadCloser) (io.ReadCloser, error) {
	zr := gzipReaders.Get().(*gzip.Reader)
	if err := zr.Reset(body); err != nil {
		gzipReaders.Put(zr)
		return nil, err
	}

	return &pooledBodyReader{
		Reader: zr,
		onClose: func() {
			zr.Close()
			gzipReaders.Put(zr)
		},
	}, nil
}

type pooledBodyReader struct {
	io.Reader
	onClose func()
}

func (r *pooledBodyReader) Close() error {
	if r.onClose != nil {
		r.onClose()
	}
	return nil
}

type gzipResponseWriter struct {
	http.ResponseWriter
	zw *gzip.Writer
}

func (w *gzipResponseWriter) WriteHeader(statusCode int) {
	w.Header().Set("Content-Encoding", "gzip")
	w.ResponseWriter.WriteHeader(statusCode)
}

func (w *gzipResponseWriter) Write(data []byte) (int, error) {
	return w.zw.Write(data)
}
