package handlers

import (
	"github.com/phamdangkhoamet/dkstory/internal/app/service/account"
	"github.com/phamdangkhoamet/dkstory/internal/app/service/catalog"
	"github.com/phamdangkhoamet/dkstory/internal/app/service/community"
	"github.com/phamdangkhoamet/dkstory/internal/app/service/entitlement"
	"github.com/phamdangkhoamet/dkstory/internal/app/service/moderation"
	"github.com/phamdangkhoamet/dkstory/internal/app/service/payment"
	"github.com/phamdangkhoamet/dkstory/internal/app/service/statistics"
	"github.com/phamdangkhoamet/dkstory/internal/models"
	"github.com/phamdangkhoamet/dkstory/pkg/response"
)

// The Resp* types only exist so swag can describe the envelope around each payload.

// RespOK is a generic envelope for endpoints returning no specific data.
type RespOK struct {
	OK      bool                     `json:"ok"`
	Code    response.APIResponseCode `json:"code"`
	Message string                   `json:"message"`
	Data    interface{}              `json:"data"`
}

type RespPlans struct {
	RespOK
	Data []entitlement.PlanInfo `json:"data"`
}

type RespSession struct {
	RespOK
	Data account.Session `json:"data"`
}

type RespProfile struct {
	RespOK
	Data account.Profile `json:"data"`
}

type RespNovels struct {
	RespOK
	Data []models.Novel `json:"data"`
}

type RespNovel struct {
	RespOK
	Data models.Novel `json:"data"`
}

type RespChapterList struct {
	RespOK
	Data []catalog.ChapterListItem `json:"data"`
}

type RespChapterView struct {
	RespOK
	Data catalog.ChapterView `json:"data"`
}

type RespAuthorPage struct {
	RespOK
	Data community.AuthorPage `json:"data"`
}

type RespAuthor struct {
	RespOK
	Data models.Author `json:"data"`
}

type RespAuthors struct {
	RespOK
	Data []models.Author `json:"data"`
}

type RespFollowers struct {
	RespOK
	Data FollowersResponse `json:"data"`
}

type RespNotifications struct {
	RespOK
	Data NotificationsResponse `json:"data"`
}

type RespReport struct {
	RespOK
	Data models.Report `json:"data"`
}

type RespReportList struct {
	RespOK
	Data moderation.ScanReportsResponse `json:"data"`
}

type RespPaymentResult struct {
	RespOK
	Data payment.Result `json:"data"`
}

type RespVipStatistic struct {
	RespOK
	Data statistics.VipStatisticResponse `json:"data"`
}

type RespVipHistory struct {
	RespOK
	Data []models.VipLog `json:"data"`
}

type RespPublicProfile struct {
	RespOK
	Data account.PublicProfile `json:"data"`
}

type RespGenres struct {
	RespOK
	Data []string `json:"data"`
}

type RespMarkAllRead struct {
	RespOK
	Data MarkAllReadResponse `json:"data"`
}
