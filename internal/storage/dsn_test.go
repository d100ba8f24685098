package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDialector_Schemes(t *testing.T) {
	tests := []struct {
		name    string
		rawURL  string
		want    string // Dialector.Name()
		wantErr bool
	}{
		{"mysql 스킴", "mysql://user:pass@db:3306/app", "mysql", false},
		{"mariadb 스킴", "mariadb://user:pass@db:3306/app", "mysql", false},
		{"postgresql 스킴", "postgresql://user:pass@db:5432/app", "postgres", false},
		{"postgres 스킴", "postgres://user:pass@db:5432/app", "postgres", false},
		{"jdbc 접두사 제거", "jdbc:mariadb://user:pass@db:3306/app", "mysql", false},
		{"빈 문자열", "", "", true},
		{"스킴 없음", "user:pass@db/app", "", true},
		{"지원하지 않는 스킴", "sqlite:///tmp/app.db", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := Dialector(tt.rawURL)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, d.Name())
		})
	}
}

func TestMysqlDSN(t *testing.T) {
	tests := []struct {
		name    string
		rawURL  string
		want    string
		wantErr bool
	}{
		{
			name:   "기본 변환",
			rawURL: "mysql://user:pass@db:3306/app",
			want:   "user:pass@tcp(db:3306)/app?charset=utf8mb4&parseTime=true",
		},
		{
			name:   "포트 생략 시 기본 포트",
			rawURL: "mysql://user:pass@db/app",
			want:   "user:pass@tcp(db:3306)/app?charset=utf8mb4&parseTime=true",
		},
		{
			name:   "기존 쿼리 파라미터 유지",
			rawURL: "mysql://user:pass@db:3307/app?charset=euckr",
			want:   "user:pass@tcp(db:3307)/app?charset=euckr&parseTime=true",
		},
		{
			name:   "자격 증명 없음",
			rawURL: "mysql://db:3306/app",
			want:   "tcp(db:3306)/app?charset=utf8mb4&parseTime=true",
		},
		{
			name:    "호스트 없음",
			rawURL:  "mysql:///app",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := mysqlDSN(tt.rawURL)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRedactURL(t *testing.T) {
	assert.Equal(t, "mysql://user:xxxxx@db:3306/app", redactURL("mysql://user:secret@db:3306/app"))
	assert.Equal(t, "mysql://db:3306/app", redactURL("mysql://db:3306/app"))
}
