// Package provider speaks the image provider's wire protocol: it builds
// /image requests from the plot's viewport and configuration, issues them
// over HTTP, and converts responses into the updates plotview.Plot.SetData
// consumes.
//
// The provider is an external collaborator; this package is deliberately
// thin. Anything with real invariants (staleness, compositing readiness)
// lives in the plotview core.
package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/tsarchive/plotview"
)

// RequestAttribute names one attribute and the Y axis it is drawn against.
type RequestAttribute struct {
	Name string `json:"name"`
	Axis int    `json:"y_axis"`
}

// AxisSettings carries per-axis scale configuration to the provider, which
// needs it to render the raster over the right value mapping.
type AxisSettings struct {
	Scale string   `json:"scale,omitempty"`
	Min   *float64 `json:"min,omitempty"`
	Max   *float64 `json:"max,omitempty"`
}

// ImageRequest is the body of a POST /image call.
type ImageRequest struct {
	Attributes []RequestAttribute      `json:"attributes"`
	// TimeRange holds the window bounds as ISO 8601 strings in UTC.
	TimeRange [2]string `json:"time_range"`
	// Size is the requested raster size in pixels, width first.
	Size [2]int                  `json:"size"`
	Axes map[string]AxisSettings `json:"axes,omitempty"`
}

// NewImageRequest builds a request covering the given viewport for every
// non-hidden attribute in the configuration. axes carries each axis's scale
// type and current domain so the provider rasterizes over the same value
// mapping the client displays; pass the plot's AxisScale values, e.g.
// p.Coords().AxisScale(axis).
func NewImageRequest(configs []plotview.AttributeConfig, v plotview.Viewport, axes map[plotview.Axis]plotview.AxisScale) ImageRequest {
	req := ImageRequest{
		TimeRange: [2]string{
			v.Range.Start.UTC().Format(time.RFC3339Nano),
			v.Range.End.UTC().Format(time.RFC3339Nano),
		},
		Size: [2]int{v.Width, v.Height},
	}
	for _, cfg := range configs {
		if cfg.Hidden {
			continue
		}
		req.Attributes = append(req.Attributes, RequestAttribute{
			Name: cfg.Name,
			Axis: int(cfg.Axis),
		})
	}
	for axis, sc := range axes {
		if req.Axes == nil {
			req.Axes = make(map[string]AxisSettings)
		}
		min, max := sc.Domain.Min, sc.Domain.Max
		req.Axes[strconv.Itoa(int(axis))] = AxisSettings{
			Scale: sc.Type.String(),
			Min:   &min,
			Max:   &max,
		}
	}
	return req
}

// Descriptor is the wire form of a per-attribute column summary. Columns
// with no data arrive as JSON nulls.
type Descriptor struct {
	TotalPoints int        `json:"total_points"`
	Indices     []int      `json:"indices"`
	Min         []*float64 `json:"min"`
	Max         []*float64 `json:"max"`
	Timestamp   []float64  `json:"timestamp"`
	Count       []*float64 `json:"count"`
}

// Descriptor converts the wire form into the core's representation, with
// nulls mapped to NaN (values) or zero (counts).
func (d Descriptor) Descriptor() *plotview.Descriptor {
	out := &plotview.Descriptor{
		TotalPoints: d.TotalPoints,
		Indices:     d.Indices,
		Min:         deref(d.Min, math.NaN()),
		Max:         deref(d.Max, math.NaN()),
		Timestamp:   d.Timestamp,
		Count:       make([]int, len(d.Count)),
	}
	for i, c := range d.Count {
		if c != nil {
			out.Count[i] = int(*c)
		}
	}
	return out
}

func deref(in []*float64, absent float64) []float64 {
	out := make([]float64, len(in))
	for i, v := range in {
		if v == nil {
			out[i] = absent
		} else {
			out[i] = *v
		}
	}
	return out
}

// AttributeImage is one attribute's slice of a response.
type AttributeImage struct {
	// Image is a base64 PNG data URL.
	Image string     `json:"image"`
	Desc  Descriptor `json:"desc"`
	YAxis int        `json:"y_axis"`
}

// AxisInfo is the native range metadata for one axis, with times in epoch
// milliseconds.
type AxisInfo struct {
	XRange [2]float64 `json:"x_range"`
	YRange [2]float64 `json:"y_range"`
}

// ImageResponse is the body of a successful /image call: one raster and
// descriptor per attribute, plus native ranges per non-empty axis.
type ImageResponse struct {
	Images map[string]AttributeImage `json:"images"`
	YAxes  map[string]AxisInfo       `json:"y_axes"`
}

// Update regroups the response by axis into the form Plot.SetData consumes.
// issued is the fetch issue time used for staleness ordering.
func (r *ImageResponse) Update(issued time.Time) *plotview.DataUpdate {
	upd := &plotview.DataUpdate{
		Issued:      issued,
		Axes:        make(map[plotview.Axis]*plotview.AxisData),
		Descriptors: make(map[string]*plotview.Descriptor),
	}
	for name, img := range r.Images {
		axis := plotview.Axis(img.YAxis)
		if !axis.Valid() {
			plotview.Logger().Warn("response names unknown axis", "attribute", name, "axis", img.YAxis)
			continue
		}
		info, ok := r.YAxes[strconv.Itoa(img.YAxis)]
		if !ok {
			continue
		}
		ad := upd.Axes[axis]
		if ad == nil {
			ad = &plotview.AxisData{
				Images: make(map[string]*plotview.RawImage),
				XRange: msRange(info.XRange),
				YRange: plotview.ValueRange{Min: info.YRange[0], Max: info.YRange[1]},
			}
			upd.Axes[axis] = ad
		}
		ad.Images[name] = &plotview.RawImage{
			PNG:    []byte(img.Image),
			XRange: msRange(info.XRange),
			YRange: plotview.ValueRange{Min: info.YRange[0], Max: info.YRange[1]},
		}
		upd.Descriptors[name] = img.Desc.Descriptor()
	}
	return upd
}

func msRange(ms [2]float64) plotview.TimeRange {
	return plotview.TimeRange{
		Start: time.UnixMilli(int64(ms[0])),
		End:   time.UnixMilli(int64(ms[1])),
	}
}

// Client issues /image requests against one provider endpoint.
type Client struct {
	base string
	http *http.Client
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithHTTPClient substitutes the underlying HTTP client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) { c.http = hc }
}

// NewClient creates a client for the provider at base, e.g.
// "http://archive.example.org:5005".
func NewClient(base string, opts ...ClientOption) *Client {
	c := &Client{base: base, http: http.DefaultClient}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// FetchImages posts the request and decodes the response. The returned
// issue time is taken before the request leaves, so it orders responses the
// way the core's staleness check expects. Transport and non-2xx failures
// wrap plotview.ErrFetchFailed.
func (c *Client) FetchImages(ctx context.Context, req ImageRequest) (*ImageResponse, time.Time, error) {
	issued := time.Now()

	body, err := json.Marshal(req)
	if err != nil {
		return nil, issued, fmt.Errorf("%w: encoding request: %v", plotview.ErrFetchFailed, err)
	}
	hreq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.base+"/image", bytes.NewReader(body))
	if err != nil {
		return nil, issued, fmt.Errorf("%w: %v", plotview.ErrFetchFailed, err)
	}
	hreq.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.http.Do(hreq)
	if err != nil {
		return nil, issued, fmt.Errorf("%w: %v", plotview.ErrFetchFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, issued, fmt.Errorf("%w: %s", plotview.ErrFetchFailed, resp.Status)
	}

	var out ImageResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, issued, fmt.Errorf("%w: decoding response: %v", plotview.ErrFetchFailed, err)
	}
	plotview.Logger().Debug("fetched images",
		"attributes", len(out.Images), "elapsed", time.Since(start))
	return &out, issued, nil
}

// FetchUpdate is FetchImages followed by Update: one call from viewport to
// a ready-to-apply data update.
func (c *Client) FetchUpdate(ctx context.Context, req ImageRequest) (*plotview.DataUpdate, error) {
	resp, issued, err := c.FetchImages(ctx, req)
	if err != nil {
		return nil, err
	}
	return resp.Update(issued), nil
}
