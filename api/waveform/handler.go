package waveform

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/killallgit/seispick/api/types"
	"github.com/killallgit/seispick/pkg/logger"
	"github.com/klauspost/compress/gzhttp"
)

const (
	contentType = "application/octet-stream"

	// DTypeHeader carries the NumPy descriptor of the encoded floats
	DTypeHeader = "X-Sample-Dtype"
)

// GetXY returns a channel's time axis and samples
// @Summary Channel waveform
// @Description Returns N time values (i / 100 Hz) followed by N samples as raw native-endian floats with no header,
// @Description in the precision of the stored array. Channels that cannot be loaded are answered with a two-sample
// @Description float32 zero trace. Responses are gzip-compressed when the client accepts it.
// @Tags waveforms
// @Produce octet-stream
// @Param event_id path string true "Event ID"
// @Param channel path string true "Channel ID"
// @Success 200 {string} binary "x values then y values"
// @Failure 500 {object} types.ErrorResponse "Waveform service failure"
// @Router /xy/{event_id}/{channel} [get]
func GetXY(deps *types.Dependencies, compress bool) gin.HandlerFunc {
	var wrap func(http.Handler) http.HandlerFunc
	if compress {
		w, err := gzhttp.NewWrapper(gzhttp.ContentTypes([]string{contentType}))
		if err != nil {
			logger.Component("api").Warn("waveform compression disabled", "error", err)
		} else {
			wrap = w
		}
	}

	return func(c *gin.Context) {
		xy, err := deps.WaveformService.LoadXY(c.Request.Context(), c.Param("event_id"), c.Param("channel"))
		if err != nil {
			types.SendError(c, err)
			return
		}

		write := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", contentType)
			w.Header().Set(DTypeHeader, string(xy.DType))
			if wrap == nil {
				w.Header().Set("Content-Length", strconv.Itoa(len(xy.Data)))
			}
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write(xy.Data)
		})

		if wrap != nil {
			wrap(write).ServeHTTP(c.Writer, c.Request)
			return
		}
		write.ServeHTTP(c.Writer, c.Request)
	}
}
