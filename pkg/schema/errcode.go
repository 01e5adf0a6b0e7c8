package schema

import "strings"

////////////////////////////////////////////////////////////////////////////////
// GLOBALS

// Codes shared by every DSM API
var commonErrors = map[int]string{
	100: "unknown error",
	101: "no parameter of API, method or version",
	102: "the requested API does not exist",
	103: "the requested method does not exist",
	104: "the requested version does not support the functionality",
	105: "the logged in session does not have permission",
	106: "session timeout",
	107: "session interrupted by duplicate login",
	119: "SID not found",
}

// Codes returned by SYNO.API.Auth
var authErrors = map[int]string{
	400: "no such account or incorrect password",
	401: "account disabled",
	402: "permission denied",
	403: "2-step verification code required",
	404: "failed to authenticate 2-step verification code",
	406: "2-step verification must be enabled",
	407: "blocked IP source",
	408: "expired password cannot change",
	409: "expired password",
	410: "password must be changed",
}

// Codes returned by SYNO.FileStation.*
var fileStationErrors = map[int]string{
	400:  "invalid parameter of file operation",
	401:  "unknown error of file operation",
	402:  "system is too busy",
	403:  "invalid user does this file operation",
	404:  "invalid group does this file operation",
	405:  "invalid user and group does this file operation",
	406:  "can't get user/group information from the account server",
	407:  "operation not permitted",
	408:  "no such file or directory",
	409:  "non-supported file system",
	410:  "failed to connect internet-based file system",
	411:  "read-only file system",
	412:  "filename too long in the non-encrypted file system",
	413:  "filename too long in the encrypted file system",
	414:  "file already exists",
	415:  "disk quota exceeded",
	416:  "no space left on device",
	417:  "input/output error",
	418:  "illegal name or path",
	419:  "illegal file name",
	420:  "illegal file name on FAT file system",
	421:  "device or resource busy",
	599:  "no such task of the file operation",
	900:  "failed to delete file(s) or folder(s)",
	1000: "failed to copy files or folders",
	1001: "failed to move files or folders",
	1002: "an error occurred at the destination",
	1003: "cannot overwrite or skip the existing file",
	1004: "file cannot overwrite a folder",
	1005: "folder cannot overwrite a file",
	1006: "cannot copy or move special characters to a FAT32 file system",
	1007: "cannot copy or move a file bigger than 4G to a FAT32 file system",
	1100: "failed to create a folder",
	1101: "the number of folders exceeds the limit",
	1200: "failed to rename",
	1800: "missing or mismatched Content-Length",
	1801: "timeout waiting for upload data",
	1802: "no filename in the upload",
	1803: "upload connection cancelled",
	1804: "oversized file on FAT file system",
	1805: "cannot overwrite or skip the existing file without the overwrite parameter",
}

////////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// ErrorText returns the description of a DSM error code for the given api.
// Codes 100-199 are common to all APIs; others depend on the api family.
func ErrorText(api string, code int) string {
	if text, ok := commonErrors[code]; ok {
		return text
	}
	var table map[int]string
	switch {
	case api == APIAuth:
		table = authErrors
	case strings.HasPrefix(api, "SYNO.FileStation."):
		table = fileStationErrors
	}
	if text, ok := table[code]; ok {
		return text
	}
	return "unknown error"
}
