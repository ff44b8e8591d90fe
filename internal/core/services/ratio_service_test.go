package services_test

import (
	"context"
	"testing"

	"github.com/Konecta-ERP/Konecta-ERP-sub000/internal/apperrors"
	portssvc "github.com/Konecta-ERP/Konecta-ERP-sub000/internal/core/ports/services"
	"github.com/Konecta-ERP/Konecta-ERP-sub000/internal/core/services"
	"github.com/Konecta-ERP/Konecta-ERP-sub000/internal/dto"
	"github.com/Konecta-ERP/Konecta-ERP-sub000/internal/repositories/memory"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type RatioServiceTestSuite struct {
	suite.Suite
	ctx     context.Context
	service portssvc.RatioSvcFacade
}

func (suite *RatioServiceTestSuite) SetupTest() {
	suite.ctx = context.Background()
	suite.service = services.NewRatioService(memory.NewStore())
}

func TestRatioServiceTestSuite(t *testing.T) {
	suite.Run(t, new(RatioServiceTestSuite))
}

func (suite *RatioServiceTestSuite) TestCreateAndPatch() {
	created, err := suite.service.CreateRatio(suite.ctx, dto.CreateRatioRequest{
		RatioName:        " Current Ratio ",
		BenchmarkValue:   decimal.RequireFromString("2.0"),
		WarningThreshold: decimal.RequireFromString("1.2"),
	}, "u1")
	suite.Require().NoError(err)
	suite.Equal("Current Ratio", created.RatioName)

	threshold := decimal.RequireFromString("1.5")
	updated, err := suite.service.UpdateRatio(suite.ctx, created.ID, dto.UpdateRatioRequest{WarningThreshold: &threshold}, "u2")
	suite.Require().NoError(err)
	suite.True(threshold.Equal(updated.WarningThreshold))
	suite.True(decimal.RequireFromString("2.0").Equal(updated.BenchmarkValue), "omitted fields are kept")
	suite.Equal("u2", updated.LastUpdatedBy)

	listed, err := suite.service.ListRatios(suite.ctx)
	suite.Require().NoError(err)
	suite.Len(listed, 1)
}

func (suite *RatioServiceTestSuite) TestDuplicateName() {
	_, err := suite.service.CreateRatio(suite.ctx, dto.CreateRatioRequest{RatioName: "Quick Ratio"}, "u1")
	suite.Require().NoError(err)

	_, err = suite.service.CreateRatio(suite.ctx, dto.CreateRatioRequest{RatioName: "Quick Ratio"}, "u1")

	suite.ErrorIs(err, apperrors.ErrDuplicate)
}

func (suite *RatioServiceTestSuite) TestBlankNameRejected() {
	_, err := suite.service.CreateRatio(suite.ctx, dto.CreateRatioRequest{RatioName: "  "}, "u1")
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *RatioServiceTestSuite) TestUnknownRatio() {
	_, err := suite.service.GetRatioByID(suite.ctx, "missing")
	suite.ErrorIs(err, apperrors.ErrNotFound)
}
