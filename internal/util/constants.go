package util

const (
	StorageLocal = "local"
	StorageMinio = "minio"
)

const (
	MimeVideo = "video/"
)

// TokenCookie 登录成功后写入的 Cookie 名称
const TokenCookie = "token"

var (
	AllowedVideoExtensions = []string{".mp4", ".mov", ".avi", ".mkv", ".webm"}
)
