package server

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/df07/go-sdf-raytracer/pkg/canvas"
	"github.com/df07/go-sdf-raytracer/pkg/loaders"
	"github.com/df07/go-sdf-raytracer/pkg/output"
	"github.com/df07/go-sdf-raytracer/pkg/renderer"
	"github.com/df07/go-sdf-raytracer/pkg/scene"
)

// RenderRequest represents a render request from the client
type RenderRequest struct {
	Scene       string        // Builtin scene name or yaml:<name> id (GET only)
	Width       int           // Image width
	Height      int           // Image height
	Format      output.Format // Image encoding
	Supersample int           // Render at this multiple of the size, then downsample
	Clamp       bool          // Clamp summed light intensity to 1
	Upload      bool          // Store the image through the upload sink instead of returning it
}

// Stats represents render statistics
type Stats struct {
	TotalPixels int   `json:"totalPixels"`
	Hits        int   `json:"hits"`
	Misses      int   `json:"misses"`
	Workers     int   `json:"workers"`
	DurationMs  int64 `json:"durationMs"`
}

// UploadResponse is returned by ?upload=true renders
type UploadResponse struct {
	ID      string           `json:"id"`
	Scene   string           `json:"scene"`
	URL     string           `json:"url"`
	Width   int              `json:"width"`
	Height  int              `json:"height"`
	Format  output.Format    `json:"format"`
	Stats   Stats            `json:"stats"`
	Console []ConsoleMessage `json:"console"`
}

// renderResult is an encoded render with its statistics
type renderResult struct {
	data  []byte
	stats renderer.RenderStats
}

// handleRender renders a builtin or discovered scene (GET) or a YAML scene
// posted in the request body (POST) and returns the encoded image
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodPost {
		w.Header().Set("Allow", "GET, POST")
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	req, err := s.parseRenderRequest(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request: "+err.Error())
		return
	}
	if req.Upload && s.sink == nil {
		writeError(w, http.StatusServiceUnavailable, "uploads are not configured")
		return
	}

	sceneObj, err := s.requestScene(w, r, req)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	renderID := s.newID()
	logger := NewRenderLogger(renderID, s.logger)
	logger.Infof("Rendering %s at %dx%d (%s, supersample %d)",
		sceneObj.Name, req.Width, req.Height, req.Format, req.Supersample)

	ctx := r.Context()
	result, err := s.render(ctx, sceneObj, req, logger)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			logger.Warnf("Client disconnected, render abandoned")
			return
		}
		logger.Errorf("Render failed: %v", err)
		writeError(w, http.StatusInternalServerError, "Render error: "+err.Error())
		return
	}

	w.Header().Set("X-Render-Id", renderID)
	w.Header().Set("X-Render-Hits", strconv.Itoa(result.stats.Hits))
	w.Header().Set("X-Render-Duration-Ms", strconv.FormatInt(result.stats.Duration.Milliseconds(), 10))

	if req.Upload {
		key := output.SceneKey(sceneObj.Name)
		url, err := s.sink.Save(ctx, key, result.data, req.Format)
		if err != nil {
			logger.Errorf("Upload failed: %v", err)
			writeError(w, http.StatusBadGateway, "upload failed")
			return
		}
		writeJSON(w, http.StatusOK, UploadResponse{
			ID:     renderID,
			Scene:  key,
			URL:    url,
			Width:  req.Width,
			Height: req.Height,
			Format: req.Format,
			Stats: Stats{
				TotalPixels: result.stats.TotalPixels,
				Hits:        result.stats.Hits,
				Misses:      result.stats.Misses,
				Workers:     result.stats.Workers,
				DurationMs:  result.stats.Duration.Milliseconds(),
			},
			Console: logger.Messages(),
		})
		return
	}

	w.Header().Set("Content-Type", req.Format.ContentType())
	w.Header().Set("Content-Length", strconv.Itoa(len(result.data)))
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.WriteHeader(http.StatusOK)
	w.Write(result.data)
}

// requestScene returns the scene named by the query, or the scene posted in the body
func (s *Server) requestScene(w http.ResponseWriter, r *http.Request, req *RenderRequest) (*scene.Scene, error) {
	if r.Method != http.MethodPost {
		return s.createScene(req.Scene)
	}

	body := http.MaxBytesReader(w, r.Body, maxSceneBodyLen)
	defer body.Close()
	sceneObj, err := loaders.LoadYAML(body)
	if err != nil {
		return nil, err
	}
	if err := sceneObj.Validate(); err != nil {
		return nil, err
	}
	if sceneObj.Name == "" {
		sceneObj.Name = "posted"
	}
	return sceneObj, nil
}

// render draws the scene at the requested size and encodes it
func (s *Server) render(ctx context.Context, sceneObj *scene.Scene, req *RenderRequest, logger *RenderLogger) (renderResult, error) {
	fb := canvas.New(req.Width*req.Supersample, req.Height*req.Supersample)
	raytracer := renderer.NewRaytracer(sceneObj, renderer.Config{ClampIntensity: req.Clamp}, logger)

	stats, err := raytracer.Render(ctx, fb)
	if err != nil {
		return renderResult{stats: stats}, err
	}

	img := output.Downsample(canvas.ToImage(fb), req.Supersample)
	var buf bytes.Buffer
	if err := output.Encode(&buf, img, req.Format); err != nil {
		return renderResult{stats: stats}, err
	}
	return renderResult{data: buf.Bytes(), stats: stats}, nil
}

// parseRenderRequest parses request parameters
func (s *Server) parseRenderRequest(r *http.Request) (*RenderRequest, error) {
	query := r.URL.Query()
	req := &RenderRequest{Scene: query.Get("scene")}
	if req.Scene == "" {
		req.Scene = "default"
	}

	var err error
	if req.Width, err = parseIntParam(query, "width", 400, 1, maxImageSize); err != nil {
		return nil, err
	}
	if req.Height, err = parseIntParam(query, "height", 400, 1, maxImageSize); err != nil {
		return nil, err
	}
	if req.Supersample, err = parseIntParam(query, "supersample", 1, 1, maxSupersample); err != nil {
		return nil, err
	}
	if req.Clamp, err = parseBoolParam(query, "clamp"); err != nil {
		return nil, err
	}
	if req.Upload, err = parseBoolParam(query, "upload"); err != nil {
		return nil, err
	}

	req.Format = output.FormatPNG
	if format := query.Get("format"); format != "" {
		if req.Format, err = output.ParseFormat(format); err != nil {
			return nil, err
		}
	}

	// Performance warning
	if req.Width*req.Height*req.Supersample*req.Supersample > 1600*1200 {
		s.logger.Warnf("Render warning: %dx%d with supersample %d may render slowly",
			req.Width, req.Height, req.Supersample)
	}

	return req, nil
}
