package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type fieldInfo struct {
	Name  string `json:"name"`
	Type  string `json:"type"`
	Array bool   `json:"array"`
}

type formatInfo struct {
	EventType    string            `json:"event_type"`
	VersionField string            `json:"version_field"`
	Fields       []fieldInfo       `json:"fields"`
	Versions     map[string]string `json:"versions"`
}

func getFormats(args Arguments, c *gin.Context) (*apiResponse, Error) {
	if args.Registry == nil {
		return nil, newSystemError("Format registry is not configured", 500)
	}

	formats := []formatInfo{}
	for _, eventType := range args.Registry.EventTypes() {
		format, ok := args.Registry.Lookup(eventType)
		if !ok {
			continue
		}

		info := formatInfo{
			EventType:    format.EventType(),
			VersionField: format.VersionField(),
			Versions:     map[string]string{},
		}
		for _, f := range format.Fields() {
			info.Fields = append(info.Fields, fieldInfo{
				Name:  f.Name,
				Type:  f.Type.String(),
				Array: f.IsArray,
			})
		}
		for _, v := range format.Versions() {
			last, _ := format.LastField(v)
			info.Versions[v] = last
		}
		formats = append(formats, info)
	}

	return &apiResponse{Code: http.StatusOK, Message: gin.H{"formats": formats}}, nil
}
