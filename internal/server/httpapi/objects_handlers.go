package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dpatil-neu/skycatalog/internal/catalog"
	"github.com/dpatil-neu/skycatalog/internal/objstore"
)

// Destination folders inside the user bucket. Copies are flattened: the
// source hierarchy is encoded in the file name, so one folder per dataset
// is enough.
const (
	goesCopyFolder   = "GOES18/"
	nexradCopyFolder = "NEXRAD/"
)

func (s *Server) listGoesObjects(c *gin.Context) {
	year, ok := requireQuery(c, "year")
	if !ok {
		return
	}
	day, ok := requireQuery(c, "day")
	if !ok {
		return
	}
	hour, ok := requireQuery(c, "hour")
	if !ok {
		return
	}
	product := c.DefaultQuery("product", s.cfg.DefaultGoesProduct)

	prefix := product + "/" + year + "/" + day + "/" + hour + "/"
	s.listObjects(c, s.cfg.GoesBucket, prefix)
}

func (s *Server) listNexradObjects(c *gin.Context) {
	year, ok := requireQuery(c, "year")
	if !ok {
		return
	}
	month, ok := requireQuery(c, "month")
	if !ok {
		return
	}
	day, ok := requireQuery(c, "day")
	if !ok {
		return
	}
	station, ok := requireQuery(c, "nexrad_station")
	if !ok {
		return
	}

	prefix := year + "/" + month + "/" + day + "/" + station + "/"
	s.listObjects(c, s.cfg.NexradBucket, prefix)
}

func (s *Server) listObjects(c *gin.Context, bucket, prefix string) {
	files, err := s.store.ListFiles(c.Request.Context(), bucket, prefix)
	if err != nil {
		s.logger.Error(c.Request.Context(), "object listing failed",
			"bucket", bucket, "prefix", prefix, "error", err)
		detail(c, http.StatusInternalServerError, "Internal error")
		return
	}
	if len(files) == 0 {
		detail(c, http.StatusNotFound, "Unable to fetch filenames from S3 bucket")
		return
	}
	c.JSON(http.StatusOK, files)
}

func (s *Server) copyGoesObject(c *gin.Context) {
	fileName, ok := requireQuery(c, "file_name")
	if !ok {
		return
	}
	year, ok := requireQuery(c, "year")
	if !ok {
		return
	}
	day, ok := requireQuery(c, "day")
	if !ok {
		return
	}
	hour, ok := requireQuery(c, "hour")
	if !ok {
		return
	}
	product := c.DefaultQuery("product", s.cfg.DefaultGoesProduct)

	srcKey := product + "/" + year + "/" + day + "/" + hour + "/" + fileName
	s.copyObject(c, s.cfg.GoesBucket, srcKey, goesCopyFolder+fileName)
}

func (s *Server) copyNexradObject(c *gin.Context) {
	fileName, ok := requireQuery(c, "file_name")
	if !ok {
		return
	}
	year, ok := requireQuery(c, "year")
	if !ok {
		return
	}
	month, ok := requireQuery(c, "month")
	if !ok {
		return
	}
	day, ok := requireQuery(c, "day")
	if !ok {
		return
	}
	station, ok := requireQuery(c, "nexrad_station")
	if !ok {
		return
	}

	srcKey := year + "/" + month + "/" + day + "/" + station + "/" + fileName
	s.copyObject(c, s.cfg.NexradBucket, srcKey, nexradCopyFolder+fileName)
}

// copyObject copies one archive object into the user bucket and returns its
// public URL. A pre-existing destination object short-circuits the copy, so
// repeated requests for the same file are cheap and idempotent.
func (s *Server) copyObject(c *gin.Context, srcBucket, srcKey, dstKey string) {
	ctx := c.Request.Context()
	url := objstore.PublicURL(s.cfg.UserBucket, dstKey)

	exists, err := s.store.Exists(ctx, s.cfg.UserBucket, dstKey)
	if err != nil {
		s.logger.Error(ctx, "destination probe failed",
			"bucket", s.cfg.UserBucket, "key", dstKey, "error", err)
		detail(c, http.StatusNotFound, "Unable to copy file")
		return
	}
	if exists {
		c.JSON(http.StatusOK, url)
		return
	}

	if err := s.store.Copy(ctx, srcBucket, srcKey, s.cfg.UserBucket, dstKey); err != nil {
		s.logger.Error(ctx, "object copy failed",
			"src_bucket", srcBucket, "src_key", srcKey, "error", err)
		detail(c, http.StatusNotFound, "Unable to copy file")
		return
	}

	c.JSON(http.StatusOK, url)
}

func (s *Server) fetchGoesFile(c *gin.Context) {
	fileName, ok := requireQuery(c, "file_name")
	if !ok {
		return
	}

	key, err := catalog.GoesObjectKey(fileName)
	if err != nil {
		detail(c, http.StatusBadRequest, "Invalid filename format for GOES18")
		return
	}

	s.fetchFile(c, s.cfg.GoesBucket, key, "No such file exists at GOES18 location")
}

func (s *Server) fetchNexradFile(c *gin.Context) {
	fileName, ok := requireQuery(c, "file_name")
	if !ok {
		return
	}

	key, err := catalog.NexradObjectKey(fileName)
	if err != nil {
		detail(c, http.StatusBadRequest, "Invalid filename format for NEXRAD")
		return
	}

	s.fetchFile(c, s.cfg.NexradBucket, key, "No such file exists at NEXRAD location")
}

// fetchFile probes the derived key and returns the public URL. The key is
// computed purely from the fields encoded in the file name, so an existence
// probe is all that is needed before handing out the link.
func (s *Server) fetchFile(c *gin.Context, bucket, key, missingMsg string) {
	exists, err := s.store.Exists(c.Request.Context(), bucket, key)
	if err != nil {
		s.logger.Error(c.Request.Context(), "existence probe failed",
			"bucket", bucket, "key", key, "error", err)
		detail(c, http.StatusInternalServerError, "Internal error")
		return
	}
	if !exists {
		detail(c, http.StatusNotFound, missingMsg)
		return
	}

	c.JSON(http.StatusOK, objstore.PublicURL(bucket, key))
}
