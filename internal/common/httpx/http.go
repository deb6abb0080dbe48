package httpx

import (
	"context"
	"net/http"

	jsoniter "github.com/json-iterator/go"
	"github.com/rs/zerolog/log"

	"github.com/gpucatalog/gpucatalog/internal/common/apperrors"
	"github.com/gpucatalog/gpucatalog/internal/common/validation"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// GetRequestData decodes a JSON body into data and validates it.
func GetRequestData(r *http.Request, data any) error {
	if r.Method != http.MethodPost && r.Method != http.MethodPut {
		return ErrReqMethodNotSupported()
	}
	if r.Body == nil || r.Body == http.NoBody {
		log.Ctx(r.Context()).Error().Msg("Empty request body")
		return ErrUnableToParseReqData()
	}
	if err := json.NewDecoder(r.Body).Decode(data); err != nil {
		log.Ctx(r.Context()).Debug().Err(err).Msg("unable to decode request")
		return ErrUnableToParseReqData()
	}
	if err := validation.Struct(data); err != nil {
		return ErrInvalidRequest(err.Error())
	}
	return nil
}

type Response struct {
	StatusCode  int
	Location    string
	Response    any
	ContentType string
}

type RequestHandler func(r *http.Request) (*Response, error)

func WrapHttpRsp(handler RequestHandler) http.HandlerFunc {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rsp, err := handler(r)
		if err != nil {
			if httperror, ok := err.(*Error); ok {
				httperror.Send(w)
			} else if appErr, ok := err.(apperrors.Error); ok {
				SendError(w, appErr)
			} else {
				ErrApplicationError(err.Error()).Send(w)
			}
			return
		}
		if rsp == nil {
			ErrApplicationError().Send(w)
			return
		}
		if rsp.ContentType == "" {
			rsp.ContentType = "application/json"
		}
		var location []string
		if rsp.Location != "" {
			location = append(location, rsp.Location)
		}
		if rsp.ContentType == "application/json" {
			SendJsonRsp(r.Context(), w, rsp.StatusCode, rsp.Response, location...)
		} else {
			ErrApplicationError("unsupported response type").Send(w)
		}
	})
}

// SendJsonRsp writes rsp as the JSON body with the given status. A nil rsp
// sends no body.
func SendJsonRsp(ctx context.Context, w http.ResponseWriter, statusCode int, rsp any, location ...string) {
	if len(location) > 0 {
		w.Header().Set("Location", location[0])
	}
	if rsp == nil {
		w.WriteHeader(statusCode)
		return
	}
	body, err := json.Marshal(rsp)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Msg("unable to marshal response")
		ErrApplicationError().Send(w)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if _, err := w.Write(body); err != nil {
		log.Ctx(ctx).Error().Err(err).Msg("unable to write response")
	}
}

type ResponseHandlerParam struct {
	Method  string
	Path    string
	Handler RequestHandler
}
