package mysql

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gormMysql "gorm.io/driver/mysql"
	"gorm.io/gorm"

	"github.com/xiebiao/mall/internal/domain/banner"
	"github.com/xiebiao/mall/internal/domain/inquiry"
	"github.com/xiebiao/mall/internal/domain/order"
	"github.com/xiebiao/mall/internal/domain/product"
	"github.com/xiebiao/mall/internal/domain/user"
	apperrors "github.com/xiebiao/mall/pkg/errors"
)

func newMockGorm(t *testing.T, mockDB *sql.DB) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(gormMysql.New(gormMysql.Config{
		Conn: mockDB,
		// 为false时GORM初始化会先执行 SELECT VERSION()
		SkipInitializeWithVersion: true,
	}), &gorm.Config{
		DisableAutomaticPing: true,
		// 单条语句不开启事务
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)
	return db
}

// 扣减语句必须带库存条件，并发下单时由数据库保证不超卖
const decreaseStockSQL = "UPDATE `products` SET `stock_quantity`=stock_quantity - \\?,`updated_at`=\\? " +
	"WHERE \\(?id = \\? AND stock_quantity >= \\?\\)? AND `products`.`deleted_at` IS NULL"

func TestProductRepository_DecreaseStock(t *testing.T) {
	dbErr := errors.New("数据库错误")
	testCases := []struct {
		name     string
		quantity int
		mock     func(mock sqlmock.Sqlmock)
		wantErr  error
		wantMsg  string
	}{
		{
			name:     "扣减成功",
			quantity: 2,
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(decreaseStockSQL).
					WithArgs(2, sqlmock.AnyArg(), 1, 2).
					WillReturnResult(sqlmock.NewResult(0, 1))
			},
		},
		{
			name:     "库存不足",
			quantity: 5,
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(decreaseStockSQL).
					WithArgs(5, sqlmock.AnyArg(), 1, 5).
					WillReturnResult(sqlmock.NewResult(0, 0))
				rows := sqlmock.NewRows([]string{"id", "name", "stock_quantity"}).AddRow(1, "셔츠", 3)
				mock.ExpectQuery("SELECT .* FROM `products`").WillReturnRows(rows)
			},
			wantErr: product.ErrInsufficientStock,
			wantMsg: "商品「셔츠」库存不足，购买数量:5，当前库存:3",
		},
		{
			// 读到的库存看似足够，但条件UPDATE没有命中（被并发订单抢先扣减），不能算成功
			name:     "并发扣减未命中",
			quantity: 2,
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(decreaseStockSQL).
					WithArgs(2, sqlmock.AnyArg(), 1, 2).
					WillReturnResult(sqlmock.NewResult(0, 0))
				rows := sqlmock.NewRows([]string{"id", "name", "stock_quantity"}).AddRow(1, "셔츠", 10)
				mock.ExpectQuery("SELECT .* FROM `products`").WillReturnRows(rows)
			},
			wantErr: product.ErrInsufficientStock,
		},
		{
			name:     "商品不存在",
			quantity: 1,
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(decreaseStockSQL).
					WillReturnResult(sqlmock.NewResult(0, 0))
				mock.ExpectQuery("SELECT .* FROM `products`").
					WillReturnRows(sqlmock.NewRows([]string{"id", "name", "stock_quantity"}))
			},
			wantErr: product.ErrProductNotFound,
		},
		{
			name:     "数据库错误",
			quantity: 1,
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(decreaseStockSQL).WillReturnError(dbErr)
			},
			wantErr: dbErr,
		},
		{
			name:     "数量非法",
			quantity: 0,
			mock:     func(mock sqlmock.Sqlmock) {},
			wantErr:  product.ErrInvalidQuantity,
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			mockDB, mock, err := sqlmock.New()
			require.NoError(t, err)
			tc.mock(mock)

			repo := NewProductRepository(newMockGorm(t, mockDB))
			err = repo.DecreaseStock(context.Background(), 1, tc.quantity)
			if tc.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tc.wantErr)
			}
			if tc.wantMsg != "" {
				assert.Equal(t, tc.wantMsg, apperrors.GetAppError(err).Message)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestProductRepository_IncreaseStock(t *testing.T) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	mock.ExpectExec("UPDATE `products` SET .*stock_quantity \\+ \\?").
		WillReturnResult(sqlmock.NewResult(0, 0))

	repo := NewProductRepository(newMockGorm(t, mockDB))
	assert.ErrorIs(t, repo.IncreaseStock(context.Background(), 9, 1), product.ErrProductNotFound)
	assert.ErrorIs(t, repo.IncreaseStock(context.Background(), 9, -1), product.ErrInvalidQuantity)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProductRepository_FindByIDNotFound(t *testing.T) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	mock.ExpectQuery("SELECT \\* FROM `products` WHERE `products`.`id` = \\?").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	repo := NewProductRepository(newMockGorm(t, mockDB))
	_, err = repo.FindByID(context.Background(), 1)
	assert.ErrorIs(t, err, product.ErrProductNotFound)
}

func TestUserRepository_Create(t *testing.T) {
	testCases := []struct {
		name    string
		mock    func(mock sqlmock.Sqlmock)
		wantErr error
		wantID  uint
	}{
		{
			name: "邮箱冲突",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec("INSERT INTO `users` .*").
					WillReturnError(&mysql.MySQLError{Number: 1062})
			},
			wantErr: user.ErrEmailDuplicate,
		},
		{
			name: "插入成功",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec("INSERT INTO `users` .*").
					WillReturnResult(sqlmock.NewResult(3, 1))
			},
			wantID: 3,
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			mockDB, mock, err := sqlmock.New()
			require.NoError(t, err)
			tc.mock(mock)

			u := &user.User{Email: "buyer@example.com", Name: "구매자", Provider: user.ProviderLocal, IsActive: true}
			err = NewUserRepository(newMockGorm(t, mockDB)).Create(context.Background(), u)
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.wantID, u.ID)
		})
	}
}

func TestUserRepository_FindByEmail(t *testing.T) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	rows := sqlmock.NewRows([]string{"id", "email", "name", "is_active", "provider"}).
		AddRow(1, "buyer@example.com", "구매자", true, "local")
	mock.ExpectQuery("SELECT \\* FROM `users` WHERE email = \\?").WillReturnRows(rows)
	mock.ExpectQuery("SELECT \\* FROM `users` WHERE email = \\?").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	repo := NewUserRepository(newMockGorm(t, mockDB))
	u, err := repo.FindByEmail(context.Background(), "buyer@example.com")
	require.NoError(t, err)
	assert.Equal(t, uint(1), u.ID)
	assert.Equal(t, "buyer@example.com", u.Email)

	_, err = repo.FindByEmail(context.Background(), "nobody@example.com")
	assert.ErrorIs(t, err, user.ErrUserNotFound)
}

func TestUserRepository_Search(t *testing.T) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	like := "%구매%"
	mock.ExpectQuery("SELECT count\\(\\*\\) FROM `users` WHERE name LIKE \\? OR email LIKE \\? OR phone LIKE \\?").
		WithArgs(like, like, like).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))
	mock.ExpectQuery("SELECT \\* FROM `users` WHERE name LIKE \\? OR email LIKE \\? OR phone LIKE \\? ORDER BY created_at DESC,id DESC LIMIT").
		WillReturnRows(sqlmock.NewRows([]string{"id", "email", "name", "phone"}).
			AddRow(3, "c@example.com", "구매자3", "010-3333-3333").
			AddRow(2, "b@example.com", "구매자2", "010-2222-2222"))

	users, total, err := NewUserRepository(newMockGorm(t, mockDB)).Search(context.Background(), "구매", 0, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	require.Len(t, users, 2)
	assert.Equal(t, uint(3), users[0].ID)
	assert.Equal(t, "010-2222-2222", users[1].Phone)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBannerRepository_List(t *testing.T) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	mock.ExpectQuery("SELECT \\* FROM `banners` WHERE is_active = \\? ORDER BY display_order ASC,created_at DESC").
		WithArgs(true).
		WillReturnRows(sqlmock.NewRows([]string{"id", "title", "banner_image", "content_blocks", "is_active", "display_order"}).
			AddRow(2, "봄 세일", "/b/2.png", `[{"type":"text","content":"최대 50%"}]`, true, 0))

	banners, err := NewBannerRepository(newMockGorm(t, mockDB)).List(context.Background(), true)
	require.NoError(t, err)
	require.Len(t, banners, 1)
	assert.Equal(t, "/b/2.png", banners[0].ImageURL)
	assert.Equal(t, []banner.ContentBlock{{Type: banner.BlockText, Content: "최대 50%"}}, banners[0].ContentBlocks)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInquiryRepository_DeleteUnanswered(t *testing.T) {
	const deleteSQL = "DELETE FROM `inquiries` WHERE id = \\? AND user_id = \\? AND is_answered = \\?"
	testCases := []struct {
		name    string
		mock    func(mock sqlmock.Sqlmock)
		wantErr error
	}{
		{
			name: "删除成功",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(deleteSQL).WithArgs(5, 1, false).WillReturnResult(sqlmock.NewResult(0, 1))
			},
		},
		{
			name: "已答复",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(deleteSQL).WillReturnResult(sqlmock.NewResult(0, 0))
				mock.ExpectQuery("SELECT `id`,`user_id`,`is_answered` FROM `inquiries`").
					WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "is_answered"}).AddRow(5, 1, true))
			},
			wantErr: inquiry.ErrAlreadyAnswered,
		},
		{
			name: "他人的咨询",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(deleteSQL).WillReturnResult(sqlmock.NewResult(0, 0))
				mock.ExpectQuery("SELECT `id`,`user_id`,`is_answered` FROM `inquiries`").
					WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "is_answered"}).AddRow(5, 2, false))
			},
			wantErr: inquiry.ErrInquiryNotFound,
		},
		{
			name: "不存在",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(deleteSQL).WillReturnResult(sqlmock.NewResult(0, 0))
				mock.ExpectQuery("SELECT `id`,`user_id`,`is_answered` FROM `inquiries`").
					WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "is_answered"}))
			},
			wantErr: inquiry.ErrInquiryNotFound,
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			mockDB, mock, err := sqlmock.New()
			require.NoError(t, err)
			tc.mock(mock)

			err = NewInquiryRepository(newMockGorm(t, mockDB)).DeleteUnanswered(context.Background(), 5, 1)
			if tc.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tc.wantErr)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestOrderRepository_UpdateStatusConflict(t *testing.T) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	mock.ExpectExec("UPDATE `orders` SET .* WHERE id = \\? AND status = \\?$").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("UPDATE `orders` SET .* WHERE id = \\? AND status = \\?$").
		WillReturnResult(sqlmock.NewResult(0, 1))

	repo := NewOrderRepository(newMockGorm(t, mockDB))
	o := &order.Order{ID: 1, Status: order.StatusCancelled, PaymentStatus: order.PaymentCancelled}
	assert.ErrorIs(t, repo.UpdateStatus(context.Background(), o, order.StatusPending), order.ErrStatusConflict)
	assert.NoError(t, repo.UpdateStatus(context.Background(), o, order.StatusPending))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTxManager(t *testing.T) {
	t.Run("提交", func(t *testing.T) {
		mockDB, mock, err := sqlmock.New()
		require.NoError(t, err)
		mock.ExpectBegin()
		mock.ExpectExec("UPDATE `products` SET .*stock_quantity - \\?").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		db := newMockGorm(t, mockDB)
		repo := NewProductRepository(db)
		err = NewTxManager(db).Transaction(context.Background(), func(ctx context.Context) error {
			return repo.DecreaseStock(ctx, 1, 1)
		})
		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("出错回滚", func(t *testing.T) {
		mockDB, mock, err := sqlmock.New()
		require.NoError(t, err)
		mock.ExpectBegin()
		mock.ExpectExec("UPDATE `products` SET .*stock_quantity - \\?").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectRollback()

		db := newMockGorm(t, mockDB)
		repo := NewProductRepository(db)
		boom := errors.New("创建订单失败")
		err = NewTxManager(db).Transaction(context.Background(), func(ctx context.Context) error {
			if err := repo.DecreaseStock(ctx, 1, 1); err != nil {
				return err
			}
			return boom
		})
		assert.ErrorIs(t, err, boom)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
