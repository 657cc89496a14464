package updater

import (
	"fmt"

	"github.com/dustin/go-humanize"
)

// Detail texts shown on the dashboard, overwritten wholly on every update.

func detailRRP(pct float64) string {
	return fmt.Sprintf("RRP YoY = %+.2f%%：數值越高代表更多資金停在貨幣市場，"+
		"流動性被抽走，對風險資產偏空。", pct)
}

func detailTGA(pct float64) string {
	return fmt.Sprintf("TGA YoY = %+.2f%%：TGA 上升代表財政部把錢收回國庫，"+
		"從市場抽走美元流動性；對風險資產偏空。", pct)
}

func detailFedBS(pct float64) string {
	return fmt.Sprintf("Fed 資產負債表 YoY = %+.2f%%：YoY 越負代表 QT 越強，"+
		"長期對 BTC / 風險資產偏空。", pct)
}

func detailNetLiquidity(pct float64, impulse, beta *float64) string {
	impulseStr := "N/A"
	if impulse != nil {
		impulseStr = fmt.Sprintf("%+.2f%%（近 90 日加速度）", *impulse)
	}
	betaStr := "N/A"
	if beta != nil {
		betaStr = fmt.Sprintf("%.2f", *beta)
	}
	return fmt.Sprintf("Net = BS - RRP - TGA · YoY = %+.2f%%；%s；Beta(BTC) ≈ %s。"+
		"YoY 越負代表系統性流動性在收縮。", pct, impulseStr, betaStr)
}

func detailStablecoin(pct float64) string {
	return fmt.Sprintf("USDT+USDC 90 日供應成長 ≈ %+.2f%%：成長過快通常對應牛市中後段，"+
		"代表場內槓桿與風險偏好升溫。", pct)
}

func detailDominance(dom, floor, ceiling float64) string {
	return fmt.Sprintf("USDT.D ≈ %.3f%%：約 %.1f%% 左右代表市場極度風險偏好、"+
		"穩定幣佔比偏低（接近牛市頂部）；約 %.1f%% 則代表穩定幣佔比偏高，"+
		"市場保守、接近底部區間。", dom, floor, ceiling)
}

func detailETFFlow(total float64) string {
	return fmt.Sprintf("最近 5 日比特幣現貨 ETF 累計淨流量 ≈ %s USD。"+
		"持續大額淨流出（負值）代表機構在減倉，比特幣上漲動能轉弱。",
		humanize.CommafWithDigits(total, 0))
}

func detailFearGreed(z, reading float64) string {
	return fmt.Sprintf("恐懼與貪婪指數 z-score = %+.2f（最新讀數 %.0f / 100，近 90 日樣本）："+
		"偏高代表情緒相對過熱，偏低代表恐慌蔓延、通常接近階段性底部。", z, reading)
}
