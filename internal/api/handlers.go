package api

import (
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/youruser/cardforge/internal/cards"
	"github.com/youruser/cardforge/internal/compose"
	"github.com/youruser/cardforge/internal/config"
	"github.com/youruser/cardforge/internal/export"
	"github.com/youruser/cardforge/internal/qr"
	"github.com/youruser/cardforge/internal/raster"
	"github.com/youruser/cardforge/internal/textfit"
)

// Server wires the export pipeline behind the HTTP handlers. The render
// configuration is threaded explicitly from here; nothing reads globals.
type Server struct {
	cfg   config.Config
	fonts *textfit.FontManager
}

// NewServer builds the handler state, parsing the configured fonts once.
func NewServer(cfg config.Config) (*Server, error) {
	fonts, err := textfit.NewFontManager(cfg.BodyFont, cfg.TitleFont)
	if err != nil {
		return nil, err
	}
	return &Server{cfg: cfg, fonts: fonts}, nil
}

// health
func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// cardHandler renders one card record to a PNG. The optional "index"
// query gives the card its deck position in the suggested filename;
// without it the name carries the XXX placeholder.
func (s *Server) cardHandler(c *gin.Context) {
	var rec cards.Card
	if err := c.BindJSON(&rec); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	index := export.NoIndex
	if v, err := strconv.Atoi(c.Query("index")); err == nil && v >= 0 {
		index = v
	}

	unit, err := compose.Compose(rec, s.cfg, s.fonts)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	img, err := raster.Rasterize(c.Request.Context(), unit, raster.Options{PixelRatio: pixelRatio(c)})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	data, err := raster.EncodePNG(img)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+export.CardFileName(rec, index)+`"`)
	c.Data(http.StatusOK, "image/png", data)
}

// archiveHandler runs the batch archive export over a posted deck and
// streams the zip back.
func (s *Server) archiveHandler(c *gin.Context) {
	var deck cards.Deck
	if err := c.BindJSON(&deck); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if len(deck.Cards) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "deck has no cards"})
		return
	}
	data, err := export.BuildArchive(c.Request.Context(), deck, s.cfg, s.fonts, export.ArchiveOptions{
		PixelRatio: pixelRatio(c),
	})
	if err != nil {
		log.Println("archive export failed:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+export.ArchiveName+`"`)
	c.Data(http.StatusOK, "application/zip", data)
}

// printHandler runs the duplex print export over a posted deck. Every
// chunk PDF is written to the output directory; the first one is streamed
// back as the download, with the remaining chunk paths announced in the
// X-Print-Extra-Files header.
func (s *Server) printHandler(c *gin.Context) {
	var deck cards.Deck
	if err := c.BindJSON(&deck); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if len(deck.Cards) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "deck has no cards"})
		return
	}
	files, err := export.BuildPrintPDFs(c.Request.Context(), deck, s.cfg, s.fonts, export.PrintOptions{
		PixelRatio: pixelRatio(c),
	})
	if err != nil {
		log.Println("print export failed:", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": err.Error(),
			// chunks flushed before the failure stay valid
			"files": files,
		})
		return
	}
	if len(files) == 0 {
		c.JSON(http.StatusOK, gin.H{"files": files, "cards": len(deck.Cards)})
		return
	}
	data, err := os.ReadFile(files[0])
	if err != nil {
		log.Println("reading print chunk failed:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error(), "files": files})
		return
	}
	c.Header("X-Print-Chunks", strconv.Itoa(len(files)))
	if len(files) > 1 {
		c.Header("X-Print-Extra-Files", strings.Join(files[1:], ","))
	}
	c.Header("Content-Disposition", `attachment; filename="`+filepath.Base(files[0])+`"`)
	c.Data(http.StatusOK, "application/pdf", data)
}

// qrHandler returns a PNG QR code for a deck-share link.
func (s *Server) qrHandler(c *gin.Context) {
	text := c.Query("text")
	if text == "" {
		text = "deck:example"
	}
	size := 400
	if v, err := strconv.Atoi(c.Query("size")); err == nil && v > 0 {
		size = v
	}
	b, err := qr.PNG(text, size)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Data(http.StatusOK, "image/png", b)
}

func pixelRatio(c *gin.Context) float64 {
	if v, err := strconv.ParseFloat(c.Query("ratio"), 64); err == nil && v > 0 {
		return v
	}
	return 1
}
