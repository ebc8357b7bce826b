// Package chart draws download series as line charts.
package chart

import (
	"fmt"
	"image"
	"image/color"
	"io"
	"math"

	"github.com/disintegration/imaging"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"github.com/AI2HU/pepychart/internal/logger"
	"github.com/AI2HU/pepychart/internal/models"
)

// Renderer turns a series into an image
type Renderer struct {
	style Style
	color color.NRGBA
}

// NewRenderer validates the style and creates a renderer
func NewRenderer(style Style) (*Renderer, error) {
	if err := style.Validate(); err != nil {
		return nil, fmt.Errorf("invalid chart style: %w", err)
	}
	c, _ := ParseColor(style.Color)

	return &Renderer{
		style: style,
		color: c,
	}, nil
}

// Render draws the series and saves it to path, the format following the extension
func (r *Renderer) Render(title string, series *models.Series, path string) error {
	format, err := imaging.FormatFromFilename(path)
	if err != nil {
		return fmt.Errorf("unsupported image format for %s: %w", path, err)
	}

	img, err := r.Draw(title, series)
	if err != nil {
		return err
	}

	if err := imaging.Save(flatten(img, format), path); err != nil {
		return fmt.Errorf("failed to save image: %w", err)
	}

	logger.Debug("Chart with %d points written to %s", series.Len(), path)
	return nil
}

// Encode draws the series and writes it to w in the given format
func (r *Renderer) Encode(w io.Writer, title string, series *models.Series, format imaging.Format) error {
	img, err := r.Draw(title, series)
	if err != nil {
		return err
	}

	if err := imaging.Encode(w, flatten(img, format), format); err != nil {
		return fmt.Errorf("failed to encode image: %w", err)
	}
	return nil
}

// Draw renders the series on a transparent canvas
func (r *Renderer) Draw(title string, series *models.Series) (image.Image, error) {
	p := plot.New()
	p.BackgroundColor = color.Transparent

	titleSize := vg.Points(float64(r.style.TitleFontSize))
	axisSize := vg.Points(float64(r.style.AxisFontSize()))

	p.Title.Text = title
	p.Title.TextStyle.Color = r.color
	p.Title.TextStyle.Font.Size = titleSize

	yLabel := "Downloads"
	if series.Window > 0 {
		yLabel = fmt.Sprintf("Downloads (Rolling Window = %d)", series.Window)
	}

	for _, axis := range []*plot.Axis{&p.X, &p.Y} {
		axis.LineStyle.Color = r.color
		axis.Tick.LineStyle.Color = r.color
		axis.Tick.Label.Color = r.color
		axis.Tick.Label.Font.Size = axisSize
		axis.Label.TextStyle.Color = r.color
		axis.Label.TextStyle.Font.Size = axisSize
	}

	p.X.Label.Text = "Date"
	p.X.Tick.Marker = plot.TimeTicks{Format: models.DateLayout}
	p.X.Tick.Label.Rotation = math.Pi / 4
	p.X.Tick.Label.XAlign = draw.XRight
	p.X.Tick.Label.YAlign = draw.YCenter
	p.Y.Label.Text = yLabel
	p.Y.Min = 0

	for _, segment := range segments(series) {
		line, points, err := plotter.NewLinePoints(segment)
		if err != nil {
			return nil, fmt.Errorf("failed to build line: %w", err)
		}
		line.LineStyle.Color = r.color
		line.LineStyle.Width = vg.Points(1.5)
		points.GlyphStyle.Color = r.color
		points.GlyphStyle.Shape = draw.CircleGlyph{}
		points.GlyphStyle.Radius = vg.Points(2.5)
		p.Add(line, points)
	}

	canvas := vgimg.NewWith(
		vgimg.UseWH(r.pixels(r.style.Width), r.pixels(r.style.Height)),
		vgimg.UseDPI(r.style.DPI),
		vgimg.UseBackgroundColor(color.Transparent),
	)
	p.Draw(draw.New(canvas))

	return canvas.Image(), nil
}

func (r *Renderer) pixels(n int) vg.Length {
	return vg.Length(float64(n)/float64(r.style.DPI)) * vg.Inch
}

// segments splits the series into runs of defined values so that
// undefined positions show up as gaps
func segments(series *models.Series) []plotter.XYs {
	var out []plotter.XYs
	var current plotter.XYs

	for i, ts := range series.Timestamps {
		if !series.Defined(i) {
			if len(current) > 0 {
				out = append(out, current)
				current = nil
			}
			continue
		}
		current = append(current, plotter.XY{X: float64(ts.Unix()), Y: series.Values[i]})
	}
	if len(current) > 0 {
		out = append(out, current)
	}

	return out
}

// flatten composes the image on white for formats without alpha
func flatten(img image.Image, format imaging.Format) image.Image {
	switch format {
	case imaging.JPEG, imaging.BMP:
		bounds := img.Bounds()
		background := imaging.New(bounds.Dx(), bounds.Dy(), color.White)
		return imaging.Overlay(background, img, image.Pt(0, 0), 1.0)
	default:
		return img
	}
}
