package service

import (
	"strconv"
	"time"

	"condo-panel/database"
	"condo-panel/database/model"
	"condo-panel/util/common"
	"condo-panel/util/random"
	"condo-panel/web/entity"
)

var defaultValueMap = map[string]string{
	"webListen":       "",
	"webDomain":       "",
	"webPort":         "8080",
	"webCertFile":     "",
	"webKeyFile":      "",
	"secret":          random.Seq(32),
	"webBasePath":     "/",
	"sessionMaxAge":   "60",
	"pageSize":        "50",
	"timeLocation":    "America/Sao_Paulo",
	"twoFactorEnable": "false",
	"twoFactorToken":  "",
	"backupEnable":    "true",
	"backupCron":      "@daily",
}

// SettingService persists panel configuration as key/value rows, falling back
// to defaultValueMap for keys that were never written.
type SettingService struct{}

func (s *SettingService) getSetting(key string) (*model.Setting, error) {
	db := database.GetDB()
	setting := &model.Setting{}
	err := db.Model(model.Setting{}).Where("key = ?", key).First(setting).Error
	if err != nil {
		return nil, err
	}
	return setting, nil
}

func (s *SettingService) saveSetting(key string, value string) error {
	setting, err := s.getSetting(key)
	db := database.GetDB()
	if database.IsNotFound(err) {
		return db.Create(&model.Setting{
			Key:   key,
			Value: value,
		}).Error
	} else if err != nil {
		return err
	}
	setting.Value = value
	return db.Save(setting).Error
}

func (s *SettingService) getString(key string) (string, error) {
	setting, err := s.getSetting(key)
	if database.IsNotFound(err) {
		value, ok := defaultValueMap[key]
		if !ok {
			return "", common.NewErrorf("key <%v> not in defaultValueMap", key)
		}
		return value, nil
	} else if err != nil {
		return "", err
	}
	return setting.Value, nil
}

func (s *SettingService) setString(key string, value string) error {
	return s.saveSetting(key, value)
}

func (s *SettingService) getBool(key string) (bool, error) {
	str, err := s.getString(key)
	if err != nil {
		return false, err
	}
	return strconv.ParseBool(str)
}

func (s *SettingService) setBool(key string, value bool) error {
	return s.setString(key, strconv.FormatBool(value))
}

func (s *SettingService) getInt(key string) (int, error) {
	str, err := s.getString(key)
	if err != nil {
		return 0, err
	}
	return strconv.Atoi(str)
}

func (s *SettingService) setInt(key string, value int) error {
	return s.setString(key, strconv.Itoa(value))
}

func (s *SettingService) GetListen() (string, error) {
	return s.getString("webListen")
}

func (s *SettingService) GetWebDomain() (string, error) {
	return s.getString("webDomain")
}

func (s *SettingService) GetPort() (int, error) {
	return s.getInt("webPort")
}

func (s *SettingService) SetPort(port int) error {
	return s.setInt("webPort", port)
}

func (s *SettingService) GetCertFile() (string, error) {
	return s.getString("webCertFile")
}

func (s *SettingService) GetKeyFile() (string, error) {
	return s.getString("webKeyFile")
}

func (s *SettingService) GetSecret() (string, error) {
	secret, err := s.getString("secret")
	if err != nil {
		return "", err
	}
	// Persist the generated default so sessions survive restarts.
	if _, err := s.getSetting("secret"); database.IsNotFound(err) {
		if err := s.saveSetting("secret", secret); err != nil {
			return "", err
		}
	}
	return secret, nil
}

func (s *SettingService) GetBasePath() (string, error) {
	basePath, err := s.getString("webBasePath")
	if err != nil {
		return "", err
	}
	if basePath == "" {
		basePath = "/"
	}
	if basePath[0] != '/' {
		basePath = "/" + basePath
	}
	if basePath[len(basePath)-1] != '/' {
		basePath += "/"
	}
	return basePath, nil
}

func (s *SettingService) GetSessionMaxAge() (int, error) {
	return s.getInt("sessionMaxAge")
}

func (s *SettingService) GetPageSize() (int, error) {
	return s.getInt("pageSize")
}

func (s *SettingService) GetTimeLocation() (*time.Location, error) {
	l, err := s.getString("timeLocation")
	if err != nil {
		return nil, err
	}
	location, err := time.LoadLocation(l)
	if err != nil {
		defaultLocation := defaultValueMap["timeLocation"]
		location, err = time.LoadLocation(defaultLocation)
	}
	return location, err
}

func (s *SettingService) GetTwoFactorEnable() (bool, error) {
	return s.getBool("twoFactorEnable")
}

func (s *SettingService) SetTwoFactorEnable(value bool) error {
	return s.setBool("twoFactorEnable", value)
}

func (s *SettingService) GetTwoFactorToken() (string, error) {
	return s.getString("twoFactorToken")
}

func (s *SettingService) SetTwoFactorToken(value string) error {
	return s.setString("twoFactorToken", value)
}

func (s *SettingService) GetBackupEnable() (bool, error) {
	return s.getBool("backupEnable")
}

func (s *SettingService) GetBackupCron() (string, error) {
	return s.getString("backupCron")
}

func (s *SettingService) GetAllSetting() (*entity.AllSetting, error) {
	allSetting := &entity.AllSetting{}

	var err error
	if allSetting.WebListen, err = s.GetListen(); err != nil {
		return nil, err
	}
	if allSetting.WebDomain, err = s.GetWebDomain(); err != nil {
		return nil, err
	}
	if allSetting.WebPort, err = s.GetPort(); err != nil {
		return nil, err
	}
	if allSetting.WebCertFile, err = s.GetCertFile(); err != nil {
		return nil, err
	}
	if allSetting.WebKeyFile, err = s.GetKeyFile(); err != nil {
		return nil, err
	}
	if allSetting.WebBasePath, err = s.getString("webBasePath"); err != nil {
		return nil, err
	}
	if allSetting.SessionMaxAge, err = s.GetSessionMaxAge(); err != nil {
		return nil, err
	}
	if allSetting.PageSize, err = s.GetPageSize(); err != nil {
		return nil, err
	}
	if allSetting.TimeLocation, err = s.getString("timeLocation"); err != nil {
		return nil, err
	}
	if allSetting.TwoFactorEnable, err = s.GetTwoFactorEnable(); err != nil {
		return nil, err
	}
	if allSetting.TwoFactorToken, err = s.GetTwoFactorToken(); err != nil {
		return nil, err
	}
	if allSetting.BackupEnable, err = s.GetBackupEnable(); err != nil {
		return nil, err
	}
	if allSetting.BackupCron, err = s.getString("backupCron"); err != nil {
		return nil, err
	}
	return allSetting, nil
}

func (s *SettingService) UpdateAllSetting(allSetting *entity.AllSetting) error {
	if err := allSetting.CheckValid(); err != nil {
		return err
	}

	return common.Combine(
		s.setString("webListen", allSetting.WebListen),
		s.setString("webDomain", allSetting.WebDomain),
		s.setInt("webPort", allSetting.WebPort),
		s.setString("webCertFile", allSetting.WebCertFile),
		s.setString("webKeyFile", allSetting.WebKeyFile),
		s.setString("webBasePath", allSetting.WebBasePath),
		s.setInt("sessionMaxAge", allSetting.SessionMaxAge),
		s.setInt("pageSize", allSetting.PageSize),
		s.setString("timeLocation", allSetting.TimeLocation),
		s.setBool("twoFactorEnable", allSetting.TwoFactorEnable),
		s.setString("twoFactorToken", allSetting.TwoFactorToken),
		s.setBool("backupEnable", allSetting.BackupEnable),
		s.setString("backupCron", allSetting.BackupCron),
	)
}

func (s *SettingService) ResetSettings() error {
	db := database.GetDB()
	return db.Where("1 = 1").Delete(model.Setting{}).Error
}
