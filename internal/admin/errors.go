package admin

import (
	"github.com/gpucatalog/gpucatalog/internal/common/apperrors"
)

var (
	ErrAdmin            apperrors.Error = apperrors.New("admin operation failed").SetExpandError(true)
	ErrLoadFailed       apperrors.Error = ErrAdmin.New("unable to load catalog data")
	ErrSaveFailed       apperrors.Error = ErrAdmin.New("unable to save device")
	ErrDeleteFailed     apperrors.Error = ErrAdmin.New("unable to delete device")
	ErrInvalidForm      apperrors.Error = ErrAdmin.New("invalid form data")
	ErrInvalidResponse  apperrors.Error = ErrAdmin.New("catalog service returned an incomplete record")
	ErrSubmitInProgress apperrors.Error = ErrAdmin.New("a submission is already in progress")
	ErrDeleteCancelled  apperrors.Error = ErrAdmin.New("delete cancelled")
)

// User facing notices.
const (
	MsgManufacturersLoadFailed = "could not load manufacturers"
	MsgDataLoadFailed          = "could not load data"
	MsgEditLoadFailed          = "could not load device for editing"
	MsgSaveFailed              = "could not save data"
	MsgInvalidForm             = "invalid form data"
	MsgDeleteFailed            = "could not delete device"
	MsgDeviceAdded             = "device added"
	MsgDeviceUpdated           = "device updated"
	MsgDeviceDeleted           = "device deleted"
	MsgConfirmDelete           = "Are you sure you want to delete this device?"
)
