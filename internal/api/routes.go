package api

import "github.com/gin-gonic/gin"

// RegisterRoutes mounts the export API on r.
func RegisterRoutes(r *gin.Engine, s *Server) {
	api := r.Group("/api")
	{
		api.GET("/health", s.health)
		api.POST("/export/card", s.cardHandler)
		api.POST("/export/archive", s.archiveHandler)
		api.POST("/export/print", s.printHandler)
		api.GET("/qr", s.qrHandler)
	}
}
