package service

import (
	"context"
	"testing"
	"time"

	"smartschedule-api/core/constants"
	"smartschedule-api/core/errors"
	"smartschedule-api/modules/extract/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractService_Parse_DefaultName(t *testing.T) {
	svc := NewExtractService(nil, time.FixedZone("ICT", 7*3600))

	resp, appErr := svc.Parse(context.Background(), &dto.ParseRequest{Text: "10h sáng mai"})

	require.Nil(t, appErr)
	assert.Equal(t, constants.DefaultEventName, resp.Name)
}

func TestExtractService_Parse_NoTime(t *testing.T) {
	svc := NewExtractService(nil, time.FixedZone("ICT", 7*3600))

	_, appErr := svc.Parse(context.Background(), &dto.ParseRequest{Text: "mua quà cho mẹ"})

	require.NotNil(t, appErr)
	assert.Equal(t, errors.ErrTimeNotFound, appErr.Code)
}
