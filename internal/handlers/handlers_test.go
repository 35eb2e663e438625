package handlers_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/SscSPs/school_fee_app/internal/apperrors"
	"github.com/SscSPs/school_fee_app/internal/core/domain"
	portssvc "github.com/SscSPs/school_fee_app/internal/core/ports/services"
	"github.com/SscSPs/school_fee_app/internal/dto"
	"github.com/SscSPs/school_fee_app/internal/handlers"
	"github.com/SscSPs/school_fee_app/internal/middleware"
	"github.com/SscSPs/school_fee_app/internal/payments"
	"github.com/SscSPs/school_fee_app/internal/platform/config"
	"github.com/SscSPs/school_fee_app/internal/utils"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

const (
	testJWTSecret     = "handler-test-secret-key-long-enough"
	testWebhookSecret = "webhook-secret"
)

var (
	superAdmin  = domain.Identity{UserID: "super-1", Role: domain.RoleSuperAdmin}
	schoolAdmin = domain.Identity{UserID: "admin-1", Role: domain.RoleSchoolAdmin, SchoolID: "school-1"}
	parentUser  = domain.Identity{UserID: "parent-1", Role: domain.RoleParent, SchoolID: "school-1"}
)

type HandlersTestSuite struct {
	suite.Suite
	router *gin.Engine

	auth         *MockAuthService
	accounts     *MockAccountStatus
	school       *MockSchoolService
	plan         *MockPlanService
	student      *MockStudentService
	parent       *MockParentService
	feeStructure *MockFeeStructureService
	generator    *MockInvoiceGenerator
	invoice      *MockInvoiceService
	payment      *MockPaymentService
}

func (suite *HandlersTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)

	suite.auth = new(MockAuthService)
	suite.accounts = new(MockAccountStatus)
	suite.accounts.On("IsActive", mock.Anything, mock.Anything).Return(true, nil).Maybe()
	suite.school = new(MockSchoolService)
	suite.plan = new(MockPlanService)
	suite.student = new(MockStudentService)
	suite.parent = new(MockParentService)
	suite.feeStructure = new(MockFeeStructureService)
	suite.generator = new(MockInvoiceGenerator)
	suite.invoice = new(MockInvoiceService)
	suite.payment = new(MockPaymentService)

	suite.router = suite.newRouter(true, "1000-M")
}

func (suite *HandlersTestSuite) TearDownTest() {
	suite.auth.AssertExpectations(suite.T())
	suite.school.AssertExpectations(suite.T())
	suite.student.AssertExpectations(suite.T())
	suite.parent.AssertExpectations(suite.T())
	suite.feeStructure.AssertExpectations(suite.T())
	suite.generator.AssertExpectations(suite.T())
	suite.invoice.AssertExpectations(suite.T())
	suite.payment.AssertExpectations(suite.T())
}

func (suite *HandlersTestSuite) newRouter(production bool, loginRate string) *gin.Engine {
	cfg := &config.Config{JWTSecret: testJWTSecret, IsProduction: production}

	loginLimiter, err := middleware.NewLimiter(loginRate, "test-login", nil)
	suite.Require().NoError(err)
	verifier, err := payments.NewSignatureVerifier(config.WebhookSchemeHMAC, testWebhookSecret)
	suite.Require().NoError(err)

	services := &portssvc.ServiceContainer{
		Auth:             suite.auth,
		AccountStatus:    suite.accounts,
		School:           suite.school,
		Plan:             suite.plan,
		Student:          suite.student,
		Parent:           suite.parent,
		FeeStructure:     suite.feeStructure,
		InvoiceGenerator: suite.generator,
		Invoice:          suite.invoice,
		Payment:          suite.payment,
	}

	r := gin.New()
	handlers.RegisterRoutes(r, cfg, services, handlers.RouteDeps{LoginLimiter: loginLimiter, WebhookVerifier: verifier})
	return r
}

func (suite *HandlersTestSuite) token(identity domain.Identity) string {
	token, err := utils.GenerateJWT(identity, testJWTSecret, time.Hour, "test")
	suite.Require().NoError(err)
	return token
}

func (suite *HandlersTestSuite) request(method, path string, as *domain.Identity, body any) *httptest.ResponseRecorder {
	return suite.requestOn(suite.router, method, path, as, body, nil)
}

func (suite *HandlersTestSuite) requestOn(r *gin.Engine, method, path string, as *domain.Identity, body any, headers map[string]string) *httptest.ResponseRecorder {
	var payload []byte
	switch b := body.(type) {
	case nil:
	case string:
		payload = []byte(b)
	default:
		var err error
		payload, err = json.Marshal(b)
		suite.Require().NoError(err)
	}

	req, err := http.NewRequest(method, path, bytes.NewReader(payload))
	suite.Require().NoError(err)
	req.Header.Set("Content-Type", "application/json")
	if as != nil {
		req.Header.Set("Authorization", "Bearer "+suite.token(*as))
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func (suite *HandlersTestSuite) TestHealth() {
	w := suite.request(http.MethodGet, "/api/health", nil, nil)
	suite.Equal(http.StatusOK, w.Code)
	suite.JSONEq(`{"status":"OK","message":"School fee API is running"}`, w.Body.String())
}

func (suite *HandlersTestSuite) TestLogin_Success() {
	schoolID := "school-1"
	result := &portssvc.LoginResult{
		Token:  "signed-token",
		User:   domain.User{UserID: "admin-1", Name: "Admin", Email: "admin@school.test", Role: domain.RoleSchoolAdmin, SchoolID: &schoolID},
		School: &domain.School{SchoolID: schoolID, Name: "Sunrise Academy", IsApproved: true},
	}
	suite.auth.On("Login", mock.Anything, dto.LoginRequest{Email: "admin@school.test", Password: "secret123"}).Return(result, nil).Once()

	w := suite.request(http.MethodPost, "/api/auth/login", nil, gin.H{"email": "admin@school.test", "password": "secret123"})

	suite.Equal(http.StatusOK, w.Code)
	body := decodeBody(suite.T(), w)
	suite.Equal("signed-token", body["token"])
	user := body["user"].(map[string]any)
	suite.Equal("school_admin", user["role"])
	suite.Equal("Sunrise Academy", user["school"].(map[string]any)["name"])
}

func (suite *HandlersTestSuite) TestLogin_InvalidCredentials() {
	suite.auth.On("Login", mock.Anything, mock.Anything).Return(nil, apperrors.NewUnauthorizedError("Invalid email or password")).Once()

	w := suite.request(http.MethodPost, "/api/auth/login", nil, gin.H{"email": "a@b.test", "password": "wrong"})

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.JSONEq(`{"message":"Invalid email or password"}`, w.Body.String())
}

func (suite *HandlersTestSuite) TestLogin_RateLimited() {
	r := suite.newRouter(true, "1-M")
	suite.auth.On("Login", mock.Anything, mock.Anything).Return(nil, apperrors.NewUnauthorizedError("Invalid email or password")).Once()

	body := gin.H{"email": "a@b.test", "password": "wrong"}
	first := suite.requestOn(r, http.MethodPost, "/api/auth/login", nil, body, nil)
	second := suite.requestOn(r, http.MethodPost, "/api/auth/login", nil, body, nil)

	suite.Equal(http.StatusUnauthorized, first.Code)
	suite.Equal(http.StatusTooManyRequests, second.Code)
}

func (suite *HandlersTestSuite) TestRegisterSchool_ShortPassword() {
	w := suite.request(http.MethodPost, "/api/auth/register-school", nil, gin.H{
		"schoolName": "Sunrise", "address": "Kathmandu", "contactEmail": "info@sunrise.test", "contactPhone": "01-555",
		"adminName": "Admin", "adminEmail": "admin@sunrise.test", "adminPassword": "123",
	})

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.JSONEq(`{"message":"\"adminPassword\" length must be at least 6 characters long"}`, w.Body.String())
}

func (suite *HandlersTestSuite) TestRegisterSchool_Created() {
	suite.auth.On("RegisterSchool", mock.Anything, mock.AnythingOfType("dto.RegisterSchoolRequest")).
		Return(&domain.School{SchoolID: "school-9", Name: "Sunrise"}, nil).Once()

	w := suite.request(http.MethodPost, "/api/auth/register-school", nil, gin.H{
		"schoolName": "Sunrise", "address": "Kathmandu", "contactEmail": "info@sunrise.test", "contactPhone": "01-555",
		"adminName": "Admin", "adminEmail": "admin@sunrise.test", "adminPassword": "secret123",
	})

	suite.Equal(http.StatusCreated, w.Code)
	suite.JSONEq(`{"message":"School registered successfully. Awaiting approval.","schoolId":"school-9"}`, w.Body.String())
}

func (suite *HandlersTestSuite) TestChangePassword_UsesCallerID() {
	req := dto.ChangePasswordRequest{OldPassword: "old-secret", NewPassword: "new-secret"}
	suite.auth.On("ChangePassword", mock.Anything, parentUser.UserID, req).Return(nil).Once()

	w := suite.request(http.MethodPost, "/api/auth/change-password", &parentUser, req)

	suite.Equal(http.StatusOK, w.Code)
	suite.JSONEq(`{"message":"Password changed successfully"}`, w.Body.String())
}

func (suite *HandlersTestSuite) TestApprovedSchools_Public() {
	suite.school.On("ListApprovedSchools", mock.Anything).Return([]domain.School{{SchoolID: "school-1", Name: "Sunrise", IsApproved: true}}, nil).Once()

	w := suite.request(http.MethodGet, "/api/schools/approved", nil, nil)

	suite.Equal(http.StatusOK, w.Code)
	var schools []map[string]any
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &schools))
	suite.Len(schools, 1)
}

func (suite *HandlersTestSuite) TestApproveSchool_NotFound() {
	suite.school.On("ApproveSchool", mock.Anything, "missing").Return(nil, apperrors.NewNotFoundError("School not found")).Once()

	w := suite.request(http.MethodPatch, "/api/schools/missing/approve", &superAdmin, nil)

	suite.Equal(http.StatusNotFound, w.Code)
	suite.JSONEq(`{"message":"School not found"}`, w.Body.String())
}

func (suite *HandlersTestSuite) TestMySchool_ScopedToCaller() {
	suite.school.On("GetSchool", mock.Anything, "school-1").Return(&domain.School{SchoolID: "school-1", Name: "Sunrise"}, nil).Once()

	w := suite.request(http.MethodGet, "/api/schools/my-school", &schoolAdmin, nil)

	suite.Equal(http.StatusOK, w.Code)
	suite.Equal("Sunrise", decodeBody(suite.T(), w)["name"])
}

func (suite *HandlersTestSuite) TestStudents_ParentDenied() {
	w := suite.request(http.MethodGet, "/api/students", &parentUser, nil)

	suite.Equal(http.StatusForbidden, w.Code)
	suite.JSONEq(`{"message":"Access denied"}`, w.Body.String())
}

func (suite *HandlersTestSuite) TestCreateStudent_DuplicateCode() {
	suite.student.On("CreateStudent", mock.Anything, "school-1", mock.AnythingOfType("dto.StudentRequest")).
		Return(nil, apperrors.NewConflictError("Student code already exists")).Once()

	w := suite.request(http.MethodPost, "/api/students", &schoolAdmin, gin.H{
		"firstName": "Asha", "lastName": "Rai", "studentCode": "STU-001", "className": "5", "section": "A",
	})

	suite.Equal(http.StatusConflict, w.Code)
	suite.JSONEq(`{"message":"Student code already exists"}`, w.Body.String())
}

func (suite *HandlersTestSuite) TestDeleteStudent() {
	suite.student.On("DeleteStudent", mock.Anything, "school-1", "stu-1").Return(nil).Once()

	w := suite.request(http.MethodDelete, "/api/students/stu-1", &schoolAdmin, nil)

	suite.Equal(http.StatusOK, w.Code)
	suite.JSONEq(`{"message":"Student deleted successfully"}`, w.Body.String())
}

func (suite *HandlersTestSuite) TestLinkChild() {
	student := &domain.Student{StudentID: "stu-1", SchoolID: "school-1", FirstName: "Asha", LastName: "Rai", StudentCode: "STU-001"}
	suite.parent.On("LinkChild", mock.Anything, parentUser, "STU-001").Return(student, nil).Once()

	w := suite.request(http.MethodPost, "/api/parents/link-child", &parentUser, gin.H{"studentCode": "STU-001"})

	suite.Equal(http.StatusOK, w.Code)
	body := decodeBody(suite.T(), w)
	suite.Equal("Child linked successfully", body["message"])
	suite.Equal("stu-1", body["student"].(map[string]any)["id"])
}

func (suite *HandlersTestSuite) TestCreateFeeStructure_PercentageAbove100() {
	w := suite.request(http.MethodPost, "/api/fee-structures", &schoolAdmin, `{
		"student": "stu-1", "monthlyFee": 1000, "scholarship": 150,
		"scholarshipType": "percentage", "effectiveFrom": "2025-04-01"
	}`)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.JSONEq(`{"message":"percentage scholarship cannot exceed 100"}`, w.Body.String())
}

func (suite *HandlersTestSuite) TestCreateFeeStructure_EmptyEffectiveFrom() {
	w := suite.request(http.MethodPost, "/api/fee-structures", &schoolAdmin, `{
		"student": "stu-1", "monthlyFee": 1000, "effectiveFrom": ""
	}`)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.JSONEq(`{"message":"\"effectiveFrom\" is required"}`, w.Body.String())
}

func (suite *HandlersTestSuite) TestCreateInvoice_EmptyDueDate() {
	w := suite.request(http.MethodPost, "/api/invoices", &schoolAdmin, `{
		"student": "stu-1", "amount": 1500, "dueDate": "", "term": "April 2025"
	}`)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.JSONEq(`{"message":"\"dueDate\" is required"}`, w.Body.String())
}

func (suite *HandlersTestSuite) TestCreateFeeStructure_StudentOutsideSchool() {
	suite.feeStructure.On("CreateFeeStructure", mock.Anything, "school-1", mock.AnythingOfType("dto.FeeStructureRequest")).
		Return(nil, apperrors.NewNotFoundError("Student not found in your school")).Once()

	w := suite.request(http.MethodPost, "/api/fee-structures", &schoolAdmin, `{
		"student": "other-stu", "monthlyFee": 1000, "effectiveFrom": "2025-04-01"
	}`)

	suite.Equal(http.StatusNotFound, w.Code)
	suite.JSONEq(`{"message":"Student not found in your school"}`, w.Body.String())
}

func (suite *HandlersTestSuite) TestGenerateInvoices_ReportsErrors() {
	suite.generator.On("GenerateMonthlyInvoices", mock.Anything, "school-1", 4, 2025).Return(&domain.InvoiceGenerationResult{
		Term:     "April 2025",
		Created:  1,
		Messages: []string{"Invoice already exists for Asha Rai - April 2025"},
	}, nil).Once()

	w := suite.request(http.MethodPost, "/api/fee-structures/generate-invoices", &schoolAdmin, gin.H{"month": 4, "year": 2025})

	suite.Equal(http.StatusOK, w.Code)
	body := decodeBody(suite.T(), w)
	suite.Equal("Generated 1 invoices", body["message"])
	suite.EqualValues(1, body["created"])
	suite.Equal([]any{"Invoice already exists for Asha Rai - April 2025"}, body["errors"])
}

func (suite *HandlersTestSuite) TestGenerateInvoices_InvalidMonth() {
	w := suite.request(http.MethodPost, "/api/fee-structures/generate-invoices", &schoolAdmin, gin.H{"month": 13, "year": 2025})

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.JSONEq(`{"message":"\"month\" must be less than or equal to 12"}`, w.Body.String())
}

func (suite *HandlersTestSuite) TestParentInvoices() {
	suite.invoice.On("ListParentInvoices", mock.Anything, parentUser).Return([]domain.Invoice{}, nil).Once()

	w := suite.request(http.MethodGet, "/api/invoices/parent", &parentUser, nil)

	suite.Equal(http.StatusOK, w.Code)
	suite.JSONEq(`[]`, w.Body.String())
}

func (suite *HandlersTestSuite) TestInitiatePayment_NotOwnChild() {
	suite.payment.On("InitiatePayment", mock.Anything, parentUser, "inv-1", domain.GatewayEsewa).
		Return(nil, apperrors.NewForbiddenError("Invoice does not belong to your child")).Once()

	w := suite.request(http.MethodPost, "/api/payments/initiate", &parentUser, gin.H{"invoiceId": "inv-1", "gateway": "esewa"})

	suite.Equal(http.StatusForbidden, w.Code)
	suite.JSONEq(`{"message":"Invoice does not belong to your child"}`, w.Body.String())
}

func (suite *HandlersTestSuite) TestInitiatePayment_AlreadyPaid() {
	suite.payment.On("InitiatePayment", mock.Anything, parentUser, "inv-1", domain.GatewayKhalti).
		Return(nil, apperrors.NewInvalidStateError("Invoice already paid")).Once()

	w := suite.request(http.MethodPost, "/api/payments/initiate", &parentUser, gin.H{"invoiceId": "inv-1", "gateway": "khalti"})

	suite.Equal(http.StatusConflict, w.Code)
	suite.JSONEq(`{"message":"Invoice already paid"}`, w.Body.String())
}

func (suite *HandlersTestSuite) TestInitiatePayment_Success() {
	suite.payment.On("InitiatePayment", mock.Anything, parentUser, "inv-1", domain.GatewayEsewa).Return(&domain.PaymentInitiation{
		TransactionID: "txn-1",
		Gateway:       domain.GatewayEsewa,
		RedirectURL:   "https://esewa.com/payment?transactionId=txn-1",
		Amount:        decimal.NewFromInt(800),
	}, nil).Once()

	w := suite.request(http.MethodPost, "/api/payments/initiate", &parentUser, gin.H{"invoiceId": "inv-1", "gateway": "esewa"})

	suite.Equal(http.StatusOK, w.Code)
	body := decodeBody(suite.T(), w)
	suite.Equal("txn-1", body["transactionId"])
	suite.Equal("https://esewa.com/payment?transactionId=txn-1", body["redirectUrl"])
}

func (suite *HandlersTestSuite) TestWebhook_BadSignatureMutatesNothing() {
	payload := `{"transactionId":"txn-1","status":"success","gatewayRefId":"ref-1"}`

	w := suite.requestOn(suite.router, http.MethodPost, "/api/payments/webhook", nil, payload,
		map[string]string{payments.SignatureHeader: payments.SignPayload("wrong-secret", []byte(payload))})

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.payment.AssertNotCalled(suite.T(), "HandleWebhook", mock.Anything, mock.Anything)
}

func (suite *HandlersTestSuite) TestWebhook_Success() {
	payload := `{"transactionId":"txn-1","status":"success","gatewayRefId":"ref-1"}`
	suite.payment.On("HandleWebhook", mock.Anything, mock.MatchedBy(func(o domain.PaymentOutcome) bool {
		return o.TransactionID == "txn-1" && o.Status == domain.TransactionSuccess && o.GatewayRefID == "ref-1" && string(o.RawPayload) == payload
	})).Return(nil).Once()

	w := suite.requestOn(suite.router, http.MethodPost, "/api/payments/webhook", nil, payload,
		map[string]string{payments.SignatureHeader: payments.SignPayload(testWebhookSecret, []byte(payload))})

	suite.Equal(http.StatusOK, w.Code)
	suite.JSONEq(`{"message":"Webhook processed"}`, w.Body.String())
}

func (suite *HandlersTestSuite) TestWebhook_UnknownStatus() {
	payload := `{"transactionId":"txn-1","status":"pending"}`

	w := suite.requestOn(suite.router, http.MethodPost, "/api/payments/webhook", nil, payload,
		map[string]string{payments.SignatureHeader: payments.SignPayload(testWebhookSecret, []byte(payload))})

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.JSONEq(`{"message":"\"status\" must be one of [success, failed]"}`, w.Body.String())
}

func (suite *HandlersTestSuite) TestWebhook_UnknownTransaction() {
	payload := `{"transactionId":"missing","status":"failed"}`
	suite.payment.On("HandleWebhook", mock.Anything, mock.Anything).Return(apperrors.NewNotFoundError("Transaction not found")).Once()

	w := suite.requestOn(suite.router, http.MethodPost, "/api/payments/webhook", nil, payload,
		map[string]string{payments.SignatureHeader: payments.SignPayload(testWebhookSecret, []byte(payload))})

	suite.Equal(http.StatusNotFound, w.Code)
	suite.JSONEq(`{"message":"Transaction not found"}`, w.Body.String())
}

func (suite *HandlersTestSuite) TestUnexpectedError_HidesDetailInProduction() {
	suite.invoice.On("ListSchoolInvoices", mock.Anything, "school-1").Return([]domain.Invoice(nil), errors.New("connection reset")).Once()

	w := suite.request(http.MethodGet, "/api/invoices/school", &schoolAdmin, nil)

	suite.Equal(http.StatusInternalServerError, w.Code)
	suite.JSONEq(`{"message":"Server error"}`, w.Body.String())
}

func (suite *HandlersTestSuite) TestUnexpectedError_DetailInDiagnosticMode() {
	r := suite.newRouter(false, "1000-M")
	suite.invoice.On("ListSchoolInvoices", mock.Anything, "school-1").Return([]domain.Invoice(nil), errors.New("connection reset")).Once()

	w := suite.requestOn(r, http.MethodGet, "/api/invoices/school", &schoolAdmin, nil, nil)

	suite.Equal(http.StatusInternalServerError, w.Code)
	body := decodeBody(suite.T(), w)
	suite.Equal("Server error", body["message"])
	suite.Equal("connection reset", body["detail"])
}

func (suite *HandlersTestSuite) TestInactiveAccount_Rejected() {
	suite.accounts = new(MockAccountStatus)
	suite.accounts.On("IsActive", mock.Anything, parentUser.UserID).Return(false, nil).Once()
	r := suite.newRouter(true, "1000-M")

	w := suite.requestOn(r, http.MethodGet, "/api/invoices/parent", &parentUser, nil, nil)

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.JSONEq(`{"message":"User not found or inactive"}`, w.Body.String())
	suite.accounts.AssertExpectations(suite.T())
}

func (suite *HandlersTestSuite) TestSwaggerDocumentsEveryRoute() {
	r := suite.newRouter(false, "1000-M")

	w := suite.requestOn(r, http.MethodGet, "/swagger/doc.json", nil, nil, nil)
	suite.Require().Equal(http.StatusOK, w.Code)

	var doc struct {
		BasePath string                    `json:"basePath"`
		Paths    map[string]map[string]any `json:"paths"`
	}
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &doc))
	suite.Equal("/api", doc.BasePath)

	for _, route := range r.Routes() {
		if !strings.HasPrefix(route.Path, "/api/") {
			continue
		}
		path := pathParam.ReplaceAllString(strings.TrimPrefix(route.Path, "/api"), "{$1}")
		suite.Contains(doc.Paths[path], strings.ToLower(route.Method), route.Method+" "+route.Path)
	}
}

func (suite *HandlersTestSuite) TestSwaggerDisabledInProduction() {
	w := suite.request(http.MethodGet, "/swagger/doc.json", nil, nil)
	suite.Equal(http.StatusNotFound, w.Code)
}

var pathParam = regexp.MustCompile(`:(\w+)`)

func TestHandlersTestSuite(t *testing.T) {
	suite.Run(t, new(HandlersTestSuite))
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	loginLimiter, err := middleware.NewLimiter("10-M", "test-noauth", nil)
	require.NoError(t, err)
	handlers.RegisterRoutes(r, &config.Config{JWTSecret: testJWTSecret, IsProduction: true}, &portssvc.ServiceContainer{},
		handlers.RouteDeps{LoginLimiter: loginLimiter, WebhookVerifier: payments.NoopVerifier{}})

	for _, path := range []string{"/api/students", "/api/fee-structures", "/api/invoices/school", "/api/schools"} {
		req, _ := http.NewRequest(http.MethodGet, path, nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code, path)
	}
}
